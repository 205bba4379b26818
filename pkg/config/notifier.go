package config

import (
	"os"
	"strings"
)

const (
	TransportNtfy     = "ntfy"
	TransportLocal    = "local"
	TransportWidget   = "widget"
	TransportTelegram = "telegram"
	TransportCalendar = "calendar"
)

type NotifierConfig struct {
	Transports []string       `mapstructure:"transports" yaml:"transports"`
	Ntfy       NtfyConfig     `mapstructure:"ntfy" yaml:"ntfy"`
	Local      LocalConfig    `mapstructure:"local" yaml:"local"`
	Widget     WidgetConfig   `mapstructure:"widget" yaml:"widget"`
	Telegram   TelegramConfig `mapstructure:"telegram" yaml:"telegram"`
	Calendar   CalendarConfig `mapstructure:"calendar" yaml:"calendar"`
}

type NtfyConfig struct {
	Server   string `mapstructure:"server" yaml:"server"`
	Topic    string `mapstructure:"topic" yaml:"topic"`
	Priority string `mapstructure:"priority" yaml:"priority"`
	Tags     string `mapstructure:"tags" yaml:"tags"`
}

func (c NtfyConfig) Complete() bool { return c.Server != "" && c.Topic != "" }

// LocalConfig selects the desktop/phone notification command. An empty
// Command picks termux-notification on Termux and notify-send elsewhere.
type LocalConfig struct {
	Command string `mapstructure:"command" yaml:"command"`
}

func (c LocalConfig) Complete() bool { return true }

type WidgetConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
	Keep int    `mapstructure:"keep" yaml:"keep"`
}

func (c WidgetConfig) Complete() bool { return c.Path != "" }

type TelegramConfig struct {
	Token  string `mapstructure:"token" yaml:"token"`
	ChatID int64  `mapstructure:"chat_id" yaml:"chat_id"`
}

func (c TelegramConfig) Complete() bool { return c.Token != "" && c.ChatID != 0 }

type CalendarConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

func (c CalendarConfig) Complete() bool { return c.Name != "" }

// TransportComplete reports whether the named transport has what it needs.
// Unknown names are never complete.
func (n NotifierConfig) TransportComplete(name string) bool {
	switch strings.ToLower(name) {
	case TransportNtfy:
		return n.Ntfy.Complete()
	case TransportLocal:
		return n.Local.Complete()
	case TransportWidget:
		return n.Widget.Complete()
	case TransportTelegram:
		return n.Telegram.Complete()
	case TransportCalendar:
		return n.Calendar.Complete()
	}
	return false
}

// IsTermux reports whether the process runs inside Termux on Android.
func IsTermux() bool {
	return strings.Contains(os.Getenv("PREFIX"), "com.termux")
}
