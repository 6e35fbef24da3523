package brevo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"jaac-backend/internal/domain/notification"

	"github.com/cenkalti/backoff/v4"
)

// RetryingDispatcher resends transport failures and 5xx/429 responses with
// exponential backoff. Provider 4xx responses are returned on first failure.
type RetryingDispatcher struct {
	next       notification.Dispatcher
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     *slog.Logger
}

func NewRetryingDispatcher(next notification.Dispatcher, maxRetries uint64, logger *slog.Logger) *RetryingDispatcher {
	return &RetryingDispatcher{
		next:       next,
		maxRetries: maxRetries,
		logger:     logger,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 300 * time.Millisecond
			b.MaxInterval = 3 * time.Second
			b.MaxElapsedTime = 15 * time.Second
			return b
		},
	}
}

// WithBackOff replaces the backoff policy; tests use a zero backoff.
func (d *RetryingDispatcher) WithBackOff(f func() backoff.BackOff) *RetryingDispatcher {
	d.newBackOff = f
	return d
}

func (d *RetryingDispatcher) Send(ctx context.Context, msg notification.Message) notification.Result {
	var res notification.Result
	attempt := 0

	op := func() error {
		attempt++
		res = d.next.Send(ctx, msg)
		if res.Success {
			return nil
		}
		err := errors.New(res.Error)
		if !res.Retryable {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(d.newBackOff(), d.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		d.logger.Warn("Retrying email dispatch",
			slog.String("kind", string(msg.Kind)),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}
	_ = backoff.RetryNotify(op, b, notify)
	return res
}
