package stripe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"jaac-backend/internal/domain/payment"
	"jaac-backend/internal/infra"
	"jaac-backend/internal/pkg/config"
	"jaac-backend/internal/usecase/commands"

	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// NewAPI builds a Stripe client; STRIPE_API_URL points it at a mock server.
func NewAPI(cfg config.StripeConfig) *client.API {
	bcfg := &stripeapi.BackendConfig{
		MaxNetworkRetries: stripeapi.Int64(2),
		LeveledLogger:     &stripeapi.LeveledLogger{Level: stripeapi.LevelError},
	}
	if cfg.APIURL != "" {
		bcfg.URL = stripeapi.String(cfg.APIURL)
	}
	backends := &stripeapi.Backends{
		API:     stripeapi.GetBackendWithConfig(stripeapi.APIBackend, bcfg),
		Connect: stripeapi.GetBackendWithConfig(stripeapi.ConnectBackend, bcfg),
		Uploads: stripeapi.GetBackendWithConfig(stripeapi.UploadsBackend, bcfg),
	}
	return client.New(cfg.SecretKey, backends)
}

type Gateway struct {
	api    *client.API
	logger *slog.Logger
}

func NewGateway(api *client.API, logger *slog.Logger) *Gateway {
	return &Gateway{api: api, logger: logger}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, in commands.CheckoutSessionInput) (*commands.CheckoutSessionOutput, error) {
	params := &stripeapi.CheckoutSessionParams{
		Mode:               stripeapi.String(string(in.Mode)),
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Price:    stripeapi.String(in.PriceID),
				Quantity: stripeapi.Int64(1),
			},
		},
		SuccessURL:               stripeapi.String(in.SuccessURL),
		CancelURL:                stripeapi.String(in.CancelURL),
		CustomerEmail:            stripeapi.String(in.CustomerEmail),
		BillingAddressCollection: stripeapi.String(string(stripeapi.CheckoutSessionBillingAddressCollectionRequired)),
	}
	params.Context = ctx
	params.AddMetadata("customerName", in.CustomerName)
	params.AddMetadata("customerPhone", in.CustomerPhone)
	params.AddMetadata("company", in.Company)

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, g.wrap(err, "failed to create checkout session", slog.String("price_id", in.PriceID))
	}

	g.logger.Info("Checkout session created",
		slog.String("session_id", s.ID),
		slog.String("mode", string(s.Mode)),
	)
	return &commands.CheckoutSessionOutput{SessionID: s.ID, URL: s.URL}, nil
}

// GetSession retrieves a session with its customer, line items and payment
// intent expanded. The payment intent carries the last card decline of an
// unpaid one-time checkout.
func (g *Gateway) GetSession(ctx context.Context, id string) (*payment.Session, error) {
	params := &stripeapi.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("customer")
	params.AddExpand("line_items")
	params.AddExpand("payment_intent")

	s, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, g.wrap(err, "failed to retrieve checkout session", slog.String("session_id", id))
	}
	return toSession(s), nil
}

func toSession(s *stripeapi.CheckoutSession) *payment.Session {
	out := &payment.Session{
		ID:            s.ID,
		Mode:          string(s.Mode),
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		CustomerEmail: s.CustomerEmail,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
	}
	if s.Customer != nil && (s.Customer.Name != "" || s.Customer.Email != "") {
		out.Customer = &payment.Party{Name: s.Customer.Name, Email: s.Customer.Email}
	}
	if s.CustomerDetails != nil {
		out.Details = &payment.Party{Name: s.CustomerDetails.Name, Email: s.CustomerDetails.Email}
	}
	if s.LineItems != nil {
		for _, li := range s.LineItems.Data {
			out.LineItems = append(out.LineItems, li.Description)
		}
	}
	if s.PaymentIntent != nil && s.PaymentIntent.LastPaymentError != nil {
		out.Decline = toDecline(s.PaymentIntent.LastPaymentError)
	}
	return out
}

func toDecline(e *stripeapi.Error) *payment.Decline {
	code := string(e.Code)
	if e.DeclineCode != "" {
		code = string(e.DeclineCode)
	}
	return &payment.Decline{Code: code, UserMessage: DeclineMessage(code)}
}

// providerError surfaces Stripe's human message instead of the JSON rendering
// of *stripe.Error.
type providerError struct {
	se *stripeapi.Error
}

func (e providerError) Error() string { return e.se.Msg }
func (e providerError) Unwrap() error { return e.se }

func (g *Gateway) wrap(err error, msg string, attrs ...any) error {
	return wrapStripeErr(g.logger, err, msg, attrs...)
}

func wrapStripeErr(logger *slog.Logger, err error, msg string, attrs ...any) error {
	var se *stripeapi.Error
	if !errors.As(err, &se) {
		return infra.WrapGatewayErr(logger, infra.KindUnavailable, msg, err, attrs...)
	}

	attrs = append(attrs,
		slog.String("type", string(se.Type)),
		slog.String("code", string(se.Code)),
		slog.Int("status", se.HTTPStatusCode),
		slog.String("request_id", se.RequestID),
	)

	var kind infra.GatewayErrorKind
	switch {
	case se.Code == stripeapi.ErrorCodeResourceMissing || se.HTTPStatusCode == http.StatusNotFound:
		kind = infra.KindNotFound
	case se.HTTPStatusCode >= 400 && se.HTTPStatusCode < 500:
		kind = infra.KindInvalidRequest
	default:
		kind = infra.KindUnavailable
	}

	return infra.WrapGatewayErr(logger, kind, msg, providerError{se: se}, attrs...).WithCode(string(se.Code))
}
