package commands

//go:generate mockgen -source=confirmation.go -destination=../../../tests/mock/commands/confirmation.go -package=commandsmock

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"jaac-backend/internal/domain/notification"
	"jaac-backend/internal/domain/payment"
	reqdto "jaac-backend/internal/handler/dto/request"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/usecase/queries"
)

const (
	msgMissingEmailData   = "Missing required email data"
	msgConfirmationFailed = "Failed to send confirmation emails"
)

// ConfirmationResult reports the outcome of the user and admin emails.
// AlreadySent means an earlier call for the same session sent them.
type ConfirmationResult struct {
	AlreadySent bool
	Details     payment.Details
	User        notification.Result
	Admin       notification.Result
}

type ConfirmationCommands interface {
	// SendConfirmationEmails sends the pair for details supplied by the
	// client. A non-empty SessionID makes the call idempotent.
	SendConfirmationEmails(ctx context.Context, req reqdto.SendConfirmationRequest) (*ConfirmationResult, error)
	// ConfirmPayment verifies the session with the processor and sends the
	// pair from the processor's record, once per session.
	ConfirmPayment(ctx context.Context, sessionID string) (*ConfirmationResult, error)
	// SendTestEmails sends a sample pair to the team inbox.
	SendTestEmails(ctx context.Context) (*ConfirmationResult, error)
}

type confirmationUseCaseImpl struct {
	payments      queries.PaymentQueries
	composer      notification.Composer
	dispatcher    notification.Dispatcher
	guard         ConfirmationGuard
	testRecipient notification.Recipient
	logger        *slog.Logger
}

func NewConfirmationUseCase(
	payments queries.PaymentQueries,
	composer notification.Composer,
	dispatcher notification.Dispatcher,
	guard ConfirmationGuard,
	testRecipient notification.Recipient,
	logger *slog.Logger,
) ConfirmationCommands {
	return &confirmationUseCaseImpl{
		payments:      payments,
		composer:      composer,
		dispatcher:    dispatcher,
		guard:         guard,
		testRecipient: testRecipient,
		logger:        logger,
	}
}

func (u *confirmationUseCaseImpl) SendConfirmationEmails(ctx context.Context, req reqdto.SendConfirmationRequest) (*ConfirmationResult, error) {
	d := payment.Details{
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		PlanName:      req.PlanName,
		Amount:        req.Amount,
		Currency:      payment.FormatCurrency(req.Currency),
	}
	return u.sendOnce(ctx, strings.TrimSpace(req.SessionID), d)
}

func (u *confirmationUseCaseImpl) ConfirmPayment(ctx context.Context, sessionID string) (*ConfirmationResult, error) {
	d, err := u.payments.SessionDetails(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return u.sendOnce(ctx, strings.TrimSpace(sessionID), *d)
}

func (u *confirmationUseCaseImpl) SendTestEmails(ctx context.Context) (*ConfirmationResult, error) {
	return u.send(ctx, payment.Details{
		CustomerEmail: u.testRecipient.Email,
		CustomerName:  "Test User",
		PlanName:      "Plan Individuel",
		Amount:        "49.00",
		Currency:      payment.DefaultCurrency,
	})
}

// sendOnce claims each side of the pair under its own key before sending it.
// A delivered side keeps its claim, a failed side is released, so a retry
// resends only what did not go out.
func (u *confirmationUseCaseImpl) sendOnce(ctx context.Context, sessionID string, d payment.Details) (*ConfirmationResult, error) {
	if d.CustomerEmail == "" || d.CustomerName == "" {
		return nil, errs.Failure(errs.ErrValidation, msgMissingEmailData, nil)
	}
	if sessionID == "" {
		return u.send(ctx, d)
	}

	user := u.claim(ctx, sessionID+":user")
	admin := u.claim(ctx, sessionID+":admin")
	if user.delivered && admin.delivered {
		u.logger.Info("Confirmation emails already sent", slog.String("session_id", sessionID))
		return &ConfirmationResult{AlreadySent: true, Details: d}, nil
	}
	return u.dispatch(ctx, d, user, admin)
}

func (u *confirmationUseCaseImpl) send(ctx context.Context, d payment.Details) (*ConfirmationResult, error) {
	return u.dispatch(ctx, d, sideClaim{}, sideClaim{})
}

// sideClaim is the guard state of one email of the pair.
type sideClaim struct {
	key       string
	token     string
	delivered bool
}

func (u *confirmationUseCaseImpl) claim(ctx context.Context, key string) sideClaim {
	token, ok, err := u.guard.Acquire(ctx, key)
	if err != nil {
		// Sending twice is better than not sending.
		u.logger.Warn("Confirmation guard unavailable, sending anyway",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return sideClaim{key: key}
	}
	return sideClaim{key: key, token: token, delivered: !ok}
}

func (u *confirmationUseCaseImpl) release(ctx context.Context, c sideClaim) {
	if c.token == "" {
		return
	}
	if err := u.guard.Release(context.WithoutCancel(ctx), c.key, c.token); err != nil {
		u.logger.Error("Failed to release confirmation guard",
			slog.String("key", c.key),
			slog.String("error", err.Error()),
		)
	}
}

// deliver sends msg unless an earlier call already delivered it.
func (u *confirmationUseCaseImpl) deliver(ctx context.Context, c sideClaim, msg notification.Message) notification.Result {
	if c.delivered {
		return notification.Result{Success: true}
	}
	res := u.dispatcher.Send(ctx, msg)
	if !res.Success {
		u.release(ctx, c)
	}
	return res
}

// dispatch sends the user and admin emails concurrently and waits for both.
func (u *confirmationUseCaseImpl) dispatch(ctx context.Context, d payment.Details, user, admin sideClaim) (*ConfirmationResult, error) {
	conf := notification.Confirmation{
		CustomerEmail: d.CustomerEmail,
		CustomerName:  d.CustomerName,
		PlanName:      d.PlanName,
		Amount:        d.Amount,
		Currency:      d.Currency,
	}
	userMsg, err := u.composer.UserConfirmation(conf)
	if err != nil {
		return nil, u.abandon(ctx, err, user, admin)
	}
	adminMsg, err := u.composer.AdminNotification(conf)
	if err != nil {
		return nil, u.abandon(ctx, err, user, admin)
	}
	return u.dispatchPair(ctx, d, user, admin, userMsg, adminMsg)
}

func (u *confirmationUseCaseImpl) abandon(ctx context.Context, err error, claims ...sideClaim) error {
	for _, c := range claims {
		u.release(ctx, c)
	}
	return errs.Public(errs.Mark(err, errs.ErrValidation), msgMissingEmailData)
}

func (u *confirmationUseCaseImpl) dispatchPair(
	ctx context.Context,
	d payment.Details,
	user, admin sideClaim,
	userMsg, adminMsg notification.Message,
) (*ConfirmationResult, error) {
	res := &ConfirmationResult{Details: d}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.User = u.deliver(ctx, user, userMsg)
	}()
	go func() {
		defer wg.Done()
		res.Admin = u.deliver(ctx, admin, adminMsg)
	}()
	wg.Wait()

	if res.User.Success && res.Admin.Success {
		u.logger.Info("Confirmation emails sent",
			slog.String("customer_email", d.CustomerEmail),
			slog.String("plan", d.PlanName),
			slog.Bool("user_sent_now", !user.delivered),
			slog.Bool("admin_sent_now", !admin.delivered),
		)
		return res, nil
	}

	u.logger.Error("Confirmation emails failed",
		slog.Bool("user_sent", res.User.Success),
		slog.Bool("admin_sent", res.Admin.Success),
		slog.String("user_error", res.User.Error),
		slog.String("admin_error", res.Admin.Error),
	)
	return res, errs.Failure(errs.ErrEmailDispatch, msgConfirmationFailed, map[string]*string{
		"user":  failureReason(res.User),
		"admin": failureReason(res.Admin),
	})
}

func failureReason(r notification.Result) *string {
	if r.Success {
		return nil
	}
	reason := r.Error
	return &reason
}
