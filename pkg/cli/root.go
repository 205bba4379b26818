package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasknotify/pkg/config"
)

var (
	configPath string
	nowFlag    string
)

var rootCmd = &cobra.Command{
	Use:           "tasknotify",
	Short:         "Send one reminder per scheduled outline task that is about to become due",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runOnce,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/tasknotify/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "evaluate as if the current time were this (RFC3339 or \"2006-01-02 15:04\")")
}

// Execute runs the command tree. Any error has already been reported when it
// returns.
func Execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
			log.Printf("An unexpected error occurred: %v", r)
		}
	}()
	if err = rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
	}
	return err
}

func loadConfig(validate bool) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w (run `tasknotify init` or edit the config file)", err)
		}
	}
	return cfg, nil
}

func currentTime(loc *time.Location) (time.Time, error) {
	if nowFlag == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, nowFlag); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", nowFlag, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now value %q: %w", nowFlag, err)
	}
	return t, nil
}
