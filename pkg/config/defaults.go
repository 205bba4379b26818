package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{Window: 5 * time.Minute},
		Identity: IdentityConfig{Namespace: "logseq_md_event", PrefixLen: 30},
		Message:  MessageConfig{Title: "Task Reminder", MaxLen: 100},
		Notifier: NotifierConfig{
			Transports: []string{TransportNtfy},
			Ntfy: NtfyConfig{
				Server:   "https://ntfy.sh",
				Priority: "high",
				Tags:     "alarm_clock,markdown",
			},
			Widget: WidgetConfig{Keep: 5},
		},
		Log:   LogConfig{Backend: "file"},
		Watch: WatchConfig{Every: time.Minute},
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("paths.outline", "")
	v.SetDefault("paths.output_dir", "")
	v.SetDefault("paths.notification_log", "")
	v.SetDefault("schedule.window", d.Schedule.Window)
	v.SetDefault("schedule.timezone", "")
	v.SetDefault("identity.namespace", d.Identity.Namespace)
	v.SetDefault("identity.prefix_len", d.Identity.PrefixLen)
	v.SetDefault("message.title", d.Message.Title)
	v.SetDefault("message.max_len", d.Message.MaxLen)
	v.SetDefault("notifier.transports", d.Notifier.Transports)
	v.SetDefault("notifier.ntfy.server", d.Notifier.Ntfy.Server)
	v.SetDefault("notifier.ntfy.topic", "")
	v.SetDefault("notifier.ntfy.priority", d.Notifier.Ntfy.Priority)
	v.SetDefault("notifier.ntfy.tags", d.Notifier.Ntfy.Tags)
	v.SetDefault("notifier.local.command", "")
	v.SetDefault("notifier.widget.path", "")
	v.SetDefault("notifier.widget.keep", d.Notifier.Widget.Keep)
	v.SetDefault("notifier.telegram.token", "")
	v.SetDefault("notifier.telegram.chat_id", 0)
	v.SetDefault("notifier.calendar.name", "")
	v.SetDefault("log.backend", d.Log.Backend)
	v.SetDefault("log.sqlite_path", "")
	v.SetDefault("watch.every", d.Watch.Every)
}
