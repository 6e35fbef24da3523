package request

type CreateCheckoutRequest struct {
	PlanID        string `json:"planId"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty" binding:"omitempty,loose_phone"`
	Company       string `json:"company,omitempty"`
}

type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

// SendConfirmationRequest carries the session details back from the success
// page. SessionID, when present, makes the call idempotent.
type SendConfirmationRequest struct {
	SessionID     string `json:"sessionId,omitempty"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	PlanName      string `json:"planName"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

type WidgetRequest struct {
	SessionID string `json:"sessionId"`
	Modality  string `json:"modality"`
}

type BookedRequest struct {
	SessionID string `json:"sessionId"`
	Modality  string `json:"modality"`
	EventURI  string `json:"eventUri,omitempty" binding:"omitempty,url"`
}
