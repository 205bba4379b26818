package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/harrisonrobin/tasknotify/pkg/config"
)

// Local shows a notification through the device's notification daemon.
type Local struct {
	command string
	timeout time.Duration
}

func NewLocal(cfg config.LocalConfig) *Local {
	command := cfg.Command
	if command == "" {
		command = "notify-send"
		if config.IsTermux() {
			command = "termux-notification"
		}
	}
	return &Local{command: command, timeout: 10 * time.Second}
}

func (l *Local) Name() string { return config.TransportLocal }

func (l *Local) Notify(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, l.command, l.args(msg)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", l.command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (l *Local) args(msg Message) []string {
	if strings.HasSuffix(l.command, "termux-notification") {
		return []string{"--id", msg.EventID, "--title", msg.Title, "--content", msg.Body, "--priority", "high"}
	}
	return []string{msg.Title, msg.Body}
}
