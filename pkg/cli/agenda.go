package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasknotify/pkg/due"
	"github.com/harrisonrobin/tasknotify/pkg/model"
	"github.com/harrisonrobin/tasknotify/pkg/notifylog"
	"github.com/harrisonrobin/tasknotify/pkg/outline"
	"github.com/harrisonrobin/tasknotify/pkg/util"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "List the tasks found in the outline and where they stand",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		if cfg.Paths.Outline == "" {
			return fmt.Errorf("paths.outline is not configured")
		}
		loc, err := cfg.Schedule.Location()
		if err != nil {
			return err
		}
		now, err := currentTime(loc)
		if err != nil {
			return err
		}
		tasks, err := outline.ParseFile(cfg.Paths.Outline, loc)
		if err != nil {
			return err
		}

		selector := due.NewSelector(cfg.Schedule.Window, cfg.Identity.Namespace, cfg.Identity.PrefixLen)
		renderAgenda(tasks, selector, now)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List identities recorded in the notification log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		store, err := notifylog.Open(cfg.Log.Backend, cfg.Paths.NotificationLog, cfg.Log.SQLitePath)
		if err != nil {
			return err
		}
		defer store.Close()

		ids, err := store.List()
		if err != nil {
			return err
		}
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Event ID"})
		for i, id := range ids {
			t.AppendRow(table.Row{i + 1, id})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d notified", len(ids))})
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agendaCmd, historyCmd)
}

func renderAgenda(tasks []model.Task, selector due.Selector, now time.Time) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Task", "Scheduled", "Status"})
	for _, task := range tasks {
		scheduled := "-"
		if task.IsScheduled() {
			scheduled = task.Scheduled.Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{task.Line, util.Truncate(task.Description, 60), scheduled, statusLabel(selector.Classify(now, task))})
	}
	t.Render()
}

func statusLabel(s due.Status) string {
	switch s {
	case due.DueSoon:
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	case due.Overdue:
		return color.RedString(string(s))
	case due.Upcoming:
		return color.GreenString(string(s))
	}
	return color.HiBlackString(string(s))
}
