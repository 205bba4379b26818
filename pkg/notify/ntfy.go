package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/harrisonrobin/tasknotify/pkg/config"
)

// Ntfy publishes to an ntfy.sh compatible server.
type Ntfy struct {
	cfg    config.NtfyConfig
	client *http.Client
}

func NewNtfy(cfg config.NtfyConfig) *Ntfy {
	return &Ntfy{cfg: cfg, client: &http.Client{Timeout: 10 * time.Second}}
}

func (n *Ntfy) Name() string { return config.TransportNtfy }

func (n *Ntfy) Notify(ctx context.Context, msg Message) error {
	if n.cfg.Topic == "" {
		return fmt.Errorf("ntfy topic is not configured")
	}
	url := strings.TrimRight(n.cfg.Server, "/") + "/" + n.cfg.Topic

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(msg.Body))
	if err != nil {
		return fmt.Errorf("failed to build ntfy request: %w", err)
	}
	req.Header.Set("Title", msg.Title)
	if n.cfg.Priority != "" {
		req.Header.Set("Priority", n.cfg.Priority)
	}
	if n.cfg.Tags != "" {
		req.Header.Set("Tags", n.cfg.Tags)
	}

	log.Printf("Sending ntfy notification to topic '%s' with title: '%s' and body: '%s'.", n.cfg.Topic, msg.Title, msg.Body)
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("ntfy request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ntfy returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
