package commands

//go:generate mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout.go -package=commandsmock

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"jaac-backend/internal/domain/plan"
	reqdto "jaac-backend/internal/handler/dto/request"
	"jaac-backend/internal/infra"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/pkg/validation"
)

const (
	msgEmailAndNameRequired = "Email and name are required"
	msgInvalidEmail         = "Invalid email format"
	msgInvalidPlan          = "Invalid plan ID"
	msgCheckoutFailed       = "Failed to create checkout session"

	// Stripe substitutes the placeholder when redirecting back.
	successPath = "/success?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/subscribe"
)

// ProcessorDetails is returned to the client when the processor rejects a
// checkout.
type ProcessorDetails struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type CheckoutCommands interface {
	CreateCheckout(ctx context.Context, req reqdto.CreateCheckoutRequest) (*CheckoutSessionOutput, error)
}

type checkoutUseCaseImpl struct {
	catalog *plan.Catalog
	prices  PriceResolver
	gateway PaymentGateway
	baseURL string
	metrics Metrics
	logger  *slog.Logger
}

func NewCheckoutUseCase(
	catalog *plan.Catalog,
	prices PriceResolver,
	gateway PaymentGateway,
	baseURL string,
	metrics Metrics,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		catalog: catalog,
		prices:  prices,
		gateway: gateway,
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

func (u *checkoutUseCaseImpl) CreateCheckout(ctx context.Context, req reqdto.CreateCheckoutRequest) (*CheckoutSessionOutput, error) {
	email := strings.TrimSpace(req.CustomerEmail)
	name := strings.TrimSpace(req.CustomerName)
	if email == "" || name == "" {
		return nil, errs.Failure(errs.ErrValidation, msgEmailAndNameRequired, nil)
	}
	if !validation.IsEmail(email) {
		return nil, errs.Failure(errs.ErrValidation, msgInvalidEmail, nil)
	}

	p, err := u.catalog.Get(req.PlanID)
	if err != nil {
		return nil, errs.Public(errs.Mark(err, errs.ErrValidation), msgInvalidPlan)
	}

	priceID, err := u.prices.ResolvePrice(ctx, p)
	if err != nil {
		u.metrics.CheckoutSession(string(p.ID), false)
		if errors.Is(err, plan.ErrPriceUnavailable) {
			return nil, errs.Public(errs.Mark(err, errs.ErrValidation), msgInvalidPlan)
		}
		return nil, processorFailure(err)
	}

	out, err := u.gateway.CreateCheckoutSession(ctx, CheckoutSessionInput{
		PriceID:       priceID,
		Mode:          p.Mode(),
		CustomerEmail: email,
		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Company:       strings.TrimSpace(req.Company),
		SuccessURL:    u.baseURL + successPath,
		CancelURL:     u.baseURL + cancelPath,
	})
	if err != nil {
		u.metrics.CheckoutSession(string(p.ID), false)
		return nil, processorFailure(err)
	}

	u.metrics.CheckoutSession(string(p.ID), true)
	u.logger.Info("Checkout started",
		slog.String("plan", string(p.ID)),
		slog.String("mode", string(p.Mode())),
		slog.String("session_id", out.SessionID),
	)
	return out, nil
}

// processorFailure passes the processor's code and message through.
func processorFailure(err error) error {
	details := ProcessorDetails{Message: err.Error()}
	if ge, ok := infra.AsGatewayError(err); ok {
		details.Code = ge.Code
		details.Message = ge.Message()
	}
	return errs.WithDetails(errs.Public(errs.Mark(err, errs.ErrProcessor), msgCheckoutFailed), details)
}
