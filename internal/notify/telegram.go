package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSink sends notifications as HTML messages to one chat.
type TelegramSink struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSink authorizes the bot token against the Telegram API.
func NewTelegramSink(token string, chatID int64, logger *slog.Logger) (*TelegramSink, error) {
	return NewTelegramSinkWithEndpoint(token, tgbotapi.APIEndpoint, chatID, &http.Client{Timeout: 10 * time.Second}, logger)
}

// NewTelegramSinkWithEndpoint targets a custom Bot API endpoint, formatted
// like tgbotapi.APIEndpoint.
func NewTelegramSinkWithEndpoint(token, endpoint string, chatID int64, client tgbotapi.HTTPClient, logger *slog.Logger) (*TelegramSink, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if logger != nil {
		logger.Info("telegram sink authorized", "account", api.Self.UserName, "chat_id", chatID)
	}
	return &TelegramSink{api: api, chatID: chatID}, nil
}

func (s *TelegramSink) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(s.chatID, formatMessage(n))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func (s *TelegramSink) Name() string { return "telegram" }

func formatMessage(n Notification) string {
	var sb strings.Builder
	sb.WriteString("🔔 <b>")
	sb.WriteString(html.EscapeString(strings.TrimSpace(n.Title)))
	sb.WriteString("</b>")
	if n.Message != "" {
		sb.WriteByte('\n')
		sb.WriteString(html.EscapeString(strings.TrimSpace(n.Message)))
	}
	if n.AppName != "" {
		sb.WriteString("\n<i>")
		sb.WriteString(html.EscapeString(n.AppName))
		sb.WriteString("</i>")
	}
	return sb.String()
}
