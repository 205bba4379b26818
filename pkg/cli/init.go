package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasknotify/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}

		cfg := config.Default()
		cfg.Paths.Outline, _ = cmd.Flags().GetString("outline")
		cfg.Paths.OutputDir, _ = cmd.Flags().GetString("output-dir")
		cfg.Notifier.Ntfy.Topic, _ = cmd.Flags().GetString("topic")
		if transports, _ := cmd.Flags().GetStringSlice("transport"); len(transports) > 0 {
			cfg.Notifier.Transports = transports
		}
		if cfg.Paths.OutputDir == "" && config.IsTermux() {
			if home, err := os.UserHomeDir(); err == nil {
				cfg.Paths.OutputDir = filepath.Join(home, "storage", "shared", "tasknotify")
			}
		}
		if cfg.Paths.OutputDir != "" {
			cfg.Paths.NotificationLog = filepath.Join(cfg.Paths.OutputDir, config.DefaultLogName)
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}
		fmt.Println("Config file created at:", path)
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Still to fill in: %v\n", err)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().String("outline", "", "path to the outline file with tasks")
	initCmd.Flags().String("output-dir", "", "directory for the notification log and widget file")
	initCmd.Flags().String("topic", "", "ntfy topic name")
	initCmd.Flags().StringSlice("transport", nil, "transports to use (ntfy, local, widget, telegram, calendar)")
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
