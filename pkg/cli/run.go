package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasknotify/pkg/config"
	"github.com/harrisonrobin/tasknotify/pkg/notify"
	"github.com/harrisonrobin/tasknotify/pkg/notifylog"
	"github.com/harrisonrobin/tasknotify/pkg/reminder"
	"github.com/harrisonrobin/tasknotify/pkg/scheduler"
	"github.com/harrisonrobin/tasknotify/pkg/wakelock"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan the outline once and notify tasks that are due soon",
	RunE:  runOnce,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep running scans at the configured interval",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("every", 0, "interval between scans (overrides watch.every)")
	rootCmd.AddCommand(runCmd, watchCmd)
}

// newService wires the notification log, transports and engine from cfg.
func newService(cfg *config.Config) (*reminder.Service, func(), error) {
	store, err := notifylog.Open(cfg.Log.Backend, cfg.Paths.NotificationLog, cfg.Log.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open notification log: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: could not close notification log: %v", err)
		}
	}

	notifier, err := notify.New(cfg.Notifier)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	svc, err := reminder.NewService(cfg, notifylog.NewDeduplicator(store), notifier)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return svc, closeStore, nil
}

func runOnce(cmd *cobra.Command, _ []string) error {
	lock := wakelock.New()
	lock.Acquire()
	defer lock.Release()

	log.Printf("--- Task reminder (%s) ---", time.Now().Format("2006-01-02 15:04:05"))

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return err
	}
	now, err := currentTime(loc)
	if err != nil {
		return err
	}

	log.Printf("Using outline file: %s", cfg.Paths.Outline)
	log.Printf("Using notification log: %s", cfg.Paths.NotificationLog)
	log.Printf("Using transports: %v", cfg.Notifier.Transports)

	svc, closeFn, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	summary, err := svc.Run(cmd.Context(), now)
	if err != nil {
		return err
	}
	log.Printf("--- Finished: %s ---", summary)
	return nil
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return err
	}
	every := cfg.Watch.Every
	if flagEvery, _ := cmd.Flags().GetDuration("every"); flagEvery > 0 {
		every = flagEvery
	}

	svc, closeFn, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := func() {
		jobCtx, cancel := context.WithTimeout(ctx, every)
		defer cancel()
		summary, err := svc.Run(jobCtx, time.Now().In(loc))
		if err != nil {
			log.Printf("Error: scan failed: %v", err)
			return
		}
		log.Printf("Scan finished: %s", summary)
	}

	sched := scheduler.New(loc)
	if _, err := sched.Every(every, job); err != nil {
		return fmt.Errorf("schedule scans: %w", err)
	}
	log.Printf("Watching %s every %s.", cfg.Paths.Outline, every)
	job()
	sched.Start()
	<-ctx.Done()
	sched.Stop()
	log.Println("Watch stopped.")
	return nil
}
