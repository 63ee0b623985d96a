// Package notifier delivers user notifications to the console and Telegram.
package notifier

import (
	"context"
	"errors"

	"TradingAssistant/internal/model"
)

// Notifier shows a notification to the user.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// Multi fans a notification out to every notifier, joining their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n model.Notification) error {
	var errs []error
	for _, nt := range m {
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop discards notifications.
type Noop struct{}

func (Noop) Notify(context.Context, model.Notification) error { return nil }
