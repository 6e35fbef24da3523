package response

import (
	"jaac-backend/internal/domain/notification"
	"jaac-backend/internal/usecase/commands"
)

type SendConfirmationResponse struct {
	Success     bool `json:"success"`
	AlreadySent bool `json:"alreadySent,omitempty"`
}

type ConfirmPaymentResponse struct {
	Success      bool   `json:"success"`
	AlreadySent  bool   `json:"alreadySent"`
	CustomerName string `json:"customerName"`
	PlanName     string `json:"planName"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
}

func FromConfirmation(r *commands.ConfirmationResult) ConfirmPaymentResponse {
	return ConfirmPaymentResponse{
		Success:      true,
		AlreadySent:  r.AlreadySent,
		CustomerName: r.Details.CustomerName,
		PlanName:     r.Details.PlanName,
		Amount:       r.Details.Amount,
		Currency:     r.Details.Currency,
	}
}

type TestEmailResponse struct {
	Success    bool                `json:"success"`
	UserEmail  notification.Result `json:"userEmail"`
	AdminEmail notification.Result `json:"adminEmail"`
}

func FromTestDispatch(r *commands.ConfirmationResult) TestEmailResponse {
	return TestEmailResponse{
		Success:    r.User.Success && r.Admin.Success,
		UserEmail:  r.User,
		AdminEmail: r.Admin,
	}
}
