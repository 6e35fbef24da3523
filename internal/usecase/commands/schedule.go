package commands

//go:generate mockgen -source=schedule.go -destination=../../../tests/mock/commands/schedule.go -package=commandsmock

import (
	"context"
	"log/slog"

	"jaac-backend/internal/domain/booking"
	reqdto "jaac-backend/internal/handler/dto/request"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/usecase/queries"
)

type SchedulingCommands interface {
	// RecordBooking acknowledges a booking made in the external widget. The
	// booking itself belongs to the scheduler; only the transition is logged.
	RecordBooking(ctx context.Context, req reqdto.BookedRequest) error
}

type schedulingUseCaseImpl struct {
	payments queries.PaymentQueries
	logger   *slog.Logger
}

func NewSchedulingUseCase(payments queries.PaymentQueries, logger *slog.Logger) SchedulingCommands {
	return &schedulingUseCaseImpl{payments: payments, logger: logger}
}

func (u *schedulingUseCaseImpl) RecordBooking(ctx context.Context, req reqdto.BookedRequest) error {
	m, err := booking.ParseModality(req.Modality)
	if err != nil {
		return errs.Public(errs.Mark(err, errs.ErrValidation), err.Error())
	}

	s, err := queries.VerifiedBooking(ctx, u.payments, req.SessionID, u.logger)
	if err != nil {
		return err
	}
	for _, step := range []func() error{
		func() error { return s.SelectModality(m) },
		s.WidgetReady,
		s.Booked,
	} {
		if err := step(); err != nil {
			return err
		}
	}

	u.logger.Info("Booking completed",
		slog.String("session_id", s.CheckoutID()),
		slog.String("modality", string(s.Modality())),
		slog.String("customer_email", s.Customer().Email),
		slog.String("event_uri", req.EventURI),
	)
	return nil
}
