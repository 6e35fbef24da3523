package queries

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/queries/payment.go -package=queriesmock

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"jaac-backend/internal/domain/payment"
	"jaac-backend/internal/infra"
	"jaac-backend/internal/pkg/errs"
)

const (
	msgSessionIDRequired = "Session ID is required"
	msgSessionNotFound   = "Session not found"
	msgNotPaid           = "Payment not completed"
	msgCustomerUnknown   = "Customer information not found"
	msgVerifyFailed      = "Failed to verify payment"
)

// SessionReader is the read side of the payment processor.
type SessionReader interface {
	GetSession(ctx context.Context, id string) (*payment.Session, error)
}

type PaymentQueries interface {
	// Verify gates access to scheduling.
	Verify(ctx context.Context, sessionID string) (*payment.VerifiedPayment, error)
	// SessionDetails feeds the confirmation emails.
	SessionDetails(ctx context.Context, sessionID string) (*payment.Details, error)
}

type paymentQueriesImpl struct {
	sessions SessionReader
	logger   *slog.Logger
}

func NewPaymentQueries(sessions SessionReader, logger *slog.Logger) PaymentQueries {
	return &paymentQueriesImpl{sessions: sessions, logger: logger}
}

func (q *paymentQueriesImpl) Verify(ctx context.Context, sessionID string) (*payment.VerifiedPayment, error) {
	s, err := q.paidSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	v, err := s.Verified()
	if err != nil {
		return nil, customerUnknown(err)
	}
	return &v, nil
}

func (q *paymentQueriesImpl) SessionDetails(ctx context.Context, sessionID string) (*payment.Details, error) {
	s, err := q.paidSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d, err := s.Summary()
	if err != nil {
		return nil, customerUnknown(err)
	}
	return &d, nil
}

func (q *paymentQueriesImpl) paidSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errs.Failure(errs.ErrValidation, msgSessionIDRequired, nil)
	}

	s, err := q.sessions.GetSession(ctx, sessionID)
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.Public(errs.Mark(err, errs.ErrNotFound), msgSessionNotFound)
		case infra.IsKind(err, infra.KindInvalidRequest):
			return nil, errs.Public(errs.Mark(err, errs.ErrValidation), msgVerifyFailed)
		default:
			return nil, errs.Public(errs.Mark(err, errs.ErrProcessor), msgVerifyFailed)
		}
	}

	if !s.IsPaid() {
		q.logger.Info("Checkout session not paid",
			slog.String("session_id", sessionID),
			slog.String("status", s.Status),
			slog.String("payment_status", s.PaymentStatus),
		)
		if s.Decline != nil {
			return nil, errs.Failure(errs.ErrNotPaid, msgNotPaid, *s.Decline)
		}
		return nil, errs.Failure(errs.ErrNotPaid, msgNotPaid, nil)
	}
	return s, nil
}

func customerUnknown(err error) error {
	if errors.Is(err, payment.ErrCustomerUnknown) {
		return errs.Public(errs.Mark(err, errs.ErrValidation), msgCustomerUnknown)
	}
	return err
}
