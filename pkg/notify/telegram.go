package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/harrisonrobin/tasknotify/pkg/config"
)

// DefaultTelegramTimeout bounds each request to the bot API.
const DefaultTelegramTimeout = 10 * time.Second

// Telegram sends the reminder to a chat through a bot.
type Telegram struct {
	cfg      config.TelegramConfig
	endpoint string
	client   *http.Client

	mu  sync.Mutex
	api *tgbotapi.BotAPI
}

func NewTelegram(cfg config.TelegramConfig) *Telegram {
	return &Telegram{
		cfg:      cfg,
		endpoint: tgbotapi.APIEndpoint,
		client:   &http.Client{Timeout: DefaultTelegramTimeout},
	}
}

func (t *Telegram) Name() string { return config.TransportTelegram }

func (t *Telegram) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out := tgbotapi.NewMessage(t.cfg.ChatID, fmt.Sprintf("⏰ %s\n%s", msg.Title, msg.Body))

	// The bot API ignores contexts, so the send runs aside and ctx wins a race.
	done := make(chan error, 1)
	go func() { done <- t.send(out) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("telegram send abandoned: %w", ctx.Err())
	}
}

func (t *Telegram) send(out tgbotapi.MessageConfig) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.api == nil {
		api, err := tgbotapi.NewBotAPIWithClient(t.cfg.Token, t.endpoint, t.client)
		if err != nil {
			return fmt.Errorf("telegram login failed: %w", err)
		}
		t.api = api
	}
	if _, err := t.api.Send(out); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
