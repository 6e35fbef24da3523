package queries

//go:generate mockgen -source=scheduling.go -destination=../../../tests/mock/queries/scheduling.go -package=queriesmock

import (
	"context"
	"log/slog"

	"jaac-backend/internal/domain/booking"
	"jaac-backend/internal/pkg/errs"
)

type SchedulingQueries interface {
	// PrepareWidget verifies the payment behind sessionID and returns the
	// scheduler prefilled with the verified customer.
	PrepareWidget(ctx context.Context, sessionID, modality string) (*booking.Widget, error)
}

type schedulingQueriesImpl struct {
	payments PaymentQueries
	links    booking.Links
	logger   *slog.Logger
}

func NewSchedulingQueries(payments PaymentQueries, links booking.Links, logger *slog.Logger) SchedulingQueries {
	return &schedulingQueriesImpl{payments: payments, links: links, logger: logger}
}

func (q *schedulingQueriesImpl) PrepareWidget(ctx context.Context, sessionID, modality string) (*booking.Widget, error) {
	m, err := booking.ParseModality(modality)
	if err != nil {
		return nil, errs.Public(errs.Mark(err, errs.ErrValidation), err.Error())
	}

	s, err := VerifiedBooking(ctx, q.payments, sessionID, q.logger)
	if err != nil {
		return nil, err
	}
	if err := s.SelectModality(m); err != nil {
		return nil, err
	}
	w, err := booking.PrepareWidget(s, q.links)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// VerifiedBooking starts a booking session and moves it to Verified, or to
// Error when the payment cannot be verified.
func VerifiedBooking(ctx context.Context, payments PaymentQueries, sessionID string, logger *slog.Logger) (*booking.Session, error) {
	s := booking.NewSession(sessionID)
	v, err := payments.Verify(ctx, sessionID)
	if err != nil {
		_ = s.Fail(errs.PublicMessage(err, err.Error()))
		logger.Warn("Scheduling refused",
			slog.String("session_id", sessionID),
			slog.String("state", string(s.State())),
			slog.String("reason", s.Failure()),
		)
		return nil, err
	}
	if err := s.Verify(booking.Customer{Name: v.CustomerName, Email: v.CustomerEmail}); err != nil {
		return nil, err
	}
	return s, nil
}
