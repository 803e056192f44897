// Package notify delivers reminder notifications to external sinks. Delivery
// is best effort: sinks never retry, and callers decide what a failure means.
package notify

import (
	"context"
	"errors"
	"time"
)

// Notification is the payload handed to a sink.
type Notification struct {
	Title   string
	Message string
	AppName string
	Icon    string
	Timeout time.Duration
}

// Sink delivers notifications.
type Sink interface {
	Notify(ctx context.Context, n Notification) error
	Name() string
}

// Multi fans a notification out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Name() string { return "multi" }
