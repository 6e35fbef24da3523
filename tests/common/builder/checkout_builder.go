//go:build unit || e2e

package builder

import (
	"jaac-backend/internal/domain/payment"
	reqdto "jaac-backend/internal/handler/dto/request"
)

type CheckoutBuilder struct {
	PlanID        string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	Company       string
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		PlanID:        "coupdemain",
		CustomerEmail: "a@b.com",
		CustomerName:  "Jane Doe",
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) BuildDTO() reqdto.CreateCheckoutRequest {
	return reqdto.CreateCheckoutRequest{
		PlanID:        b.PlanID,
		CustomerEmail: b.CustomerEmail,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Company:       b.Company,
	}
}

// SessionBuilder builds processor-side checkout sessions.
type SessionBuilder struct {
	session payment.Session
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{session: payment.Session{
		ID:            "cs_test_a1",
		Mode:          "payment",
		Status:        payment.StatusComplete,
		PaymentStatus: payment.PaymentStatusPaid,
		Details:       &payment.Party{Name: "Jane Doe", Email: "a@b.com"},
		CustomerEmail: "a@b.com",
		AmountTotal:   2900,
		Currency:      "cad",
		Metadata:      map[string]string{"customerName": "Jane Doe"},
		LineItems:     []string{"Coup de Pouce"},
	}}
}

func (b *SessionBuilder) With(mutate func(*payment.Session)) *SessionBuilder {
	mutate(&b.session)
	return b
}

func (b *SessionBuilder) Unpaid() *SessionBuilder {
	b.session.Status = payment.StatusOpen
	b.session.PaymentStatus = payment.PaymentStatusUnpaid
	return b
}

func (b *SessionBuilder) Build() *payment.Session {
	s := b.session
	return &s
}

func (b *SessionBuilder) BuildDetails() *payment.Details {
	d, _ := b.session.Summary()
	return &d
}

func (b *SessionBuilder) BuildConfirmationDTO() reqdto.SendConfirmationRequest {
	d := b.BuildDetails()
	return reqdto.SendConfirmationRequest{
		SessionID:     b.session.ID,
		CustomerEmail: d.CustomerEmail,
		CustomerName:  d.CustomerName,
		PlanName:      d.PlanName,
		Amount:        d.Amount,
		Currency:      d.Currency,
	}
}
