package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher is the part of *nats.Conn the sink needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the JSON body published for each notification.
type Event struct {
	Title          string `json:"title"`
	Message        string `json:"message"`
	AppName        string `json:"app_name,omitempty"`
	Icon           string `json:"icon,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	SentAt         int64  `json:"sent_at"`
}

// NATSSink publishes notifications as events on a subject.
type NATSSink struct {
	pub     Publisher
	subject string
	now     func() time.Time
	logger  *slog.Logger
}

func NewNATSSink(pub Publisher, subject string, logger *slog.Logger) *NATSSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &NATSSink{
		pub:     pub,
		subject: subject,
		now:     time.Now,
		logger:  logger.With("component", "nats_sink"),
	}
}

// ConnectNATS dials url, reconnecting forever in the background. An
// unreachable server at startup is not an error: the connection keeps
// retrying and publishes are buffered until it comes up.
func ConnectNATS(url string, logger *slog.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	nc, err := nats.Connect(url,
		nats.Name("task-tracker"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

func (s *NATSSink) Notify(ctx context.Context, n Notification) error {
	data, err := json.Marshal(Event{
		Title:          n.Title,
		Message:        n.Message,
		AppName:        n.AppName,
		Icon:           n.Icon,
		TimeoutSeconds: int(n.Timeout / time.Second),
		SentAt:         s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.pub.Publish(s.subject, data); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	s.logger.DebugContext(ctx, "notification published", "subject", s.subject, "title", n.Title)
	return nil
}

func (s *NATSSink) Name() string { return "nats" }
