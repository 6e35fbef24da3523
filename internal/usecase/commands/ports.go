package commands

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports.go -package=commandsmock

import (
	"context"
	"io"

	"jaac-backend/internal/domain/plan"
)

// Write-side ports. Adapters live under internal/infra.

type CheckoutSessionInput struct {
	PriceID       string
	Mode          plan.Mode
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	Company       string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSessionOutput struct {
	SessionID string
	URL       string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSessionOutput, error)
}

type PriceResolver interface {
	ResolvePrice(ctx context.Context, p plan.Plan) (string, error)
}

// FileObject is a file on its way to storage. Size is -1 when unknown.
type FileObject struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type FileStore interface {
	Save(ctx context.Context, obj FileObject) (url string, err error)
}

// ConfirmationGuard ensures each confirmation email is sent once per
// checkout session. Acquire returns the token Release needs; ok is false when
// the key is already claimed.
type ConfirmationGuard interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// Metrics is the subset of the Prometheus collectors the use cases update.
type Metrics interface {
	CheckoutSession(plan string, ok bool)
	Upload(ok bool)
}
