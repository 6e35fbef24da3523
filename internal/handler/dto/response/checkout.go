package response

import (
	"jaac-backend/internal/domain/payment"
	"jaac-backend/internal/usecase/commands"
)

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func FromCheckoutSession(o *commands.CheckoutSessionOutput) CheckoutSessionResponse {
	return CheckoutSessionResponse{SessionID: o.SessionID, URL: o.URL}
}

type VerifyPaymentResponse struct {
	Verified      bool   `json:"verified"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

func FromVerifiedPayment(v *payment.VerifiedPayment) VerifyPaymentResponse {
	return VerifyPaymentResponse{
		Verified:      v.Verified,
		CustomerName:  v.CustomerName,
		CustomerEmail: v.CustomerEmail,
	}
}

type SessionDetailsResponse struct {
	Success       bool   `json:"success"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	PlanName      string `json:"planName"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

func FromDetails(d payment.Details) SessionDetailsResponse {
	return SessionDetailsResponse{
		Success:       true,
		CustomerEmail: d.CustomerEmail,
		CustomerName:  d.CustomerName,
		PlanName:      d.PlanName,
		Amount:        d.Amount,
		Currency:      d.Currency,
	}
}
