package payment

import (
	"errors"
	"strconv"
	"strings"
)

var ErrCustomerUnknown = errors.New("Customer information not found")

const (
	PaymentStatusPaid              = "paid"
	PaymentStatusUnpaid            = "unpaid"
	PaymentStatusNoPaymentRequired = "no_payment_required"

	StatusComplete = "complete"
	StatusOpen     = "open"
	StatusExpired  = "expired"

	DefaultCurrency = "CAD"
	UnknownPlanName = "Unknown Plan"
)

// Party is a name/email pair as recorded by the processor.
type Party struct {
	Name  string
	Email string
}

// Session is a processor-agnostic snapshot of a hosted checkout session.
type Session struct {
	ID            string
	Mode          string
	Status        string
	PaymentStatus string
	// Customer is set when the processor holds a persistent customer record.
	Customer *Party
	// Details are the billing details collected on the checkout page.
	Details       *Party
	CustomerEmail string
	AmountTotal   int64
	Currency      string
	Metadata      map[string]string
	LineItems     []string
	// Decline is the last failed payment attempt of an unpaid session.
	Decline *Decline
}

// Decline is a card decline as reported by the processor, with text the
// customer can act on.
type Decline struct {
	Code        string `json:"code"`
	UserMessage string `json:"userMessage"`
}

// IsPaid accepts "paid", and "no_payment_required" on a completed session.
func (s Session) IsPaid() bool {
	if s.PaymentStatus == PaymentStatusPaid {
		return true
	}
	return s.Status == StatusComplete && s.PaymentStatus == PaymentStatusNoPaymentRequired
}

// Identity prefers the customer record, then checkout details, then the
// email and name the session was created with.
func (s Session) Identity() (Party, error) {
	var p Party
	for _, src := range []*Party{s.Customer, s.Details} {
		if src == nil {
			continue
		}
		if p.Name == "" {
			p.Name = strings.TrimSpace(src.Name)
		}
		if p.Email == "" {
			p.Email = strings.TrimSpace(src.Email)
		}
	}
	if p.Email == "" {
		p.Email = s.CustomerEmail
	}
	if p.Name == "" {
		p.Name = s.Metadata["customerName"]
	}
	if p.Name == "" && p.Email == "" {
		return Party{}, ErrCustomerUnknown
	}
	return p, nil
}

func (s Session) PlanName() string {
	for _, d := range s.LineItems {
		if d != "" {
			return d
		}
	}
	return UnknownPlanName
}

// VerifiedPayment gates access to scheduling.
type VerifiedPayment struct {
	Verified      bool
	CustomerName  string
	CustomerEmail string
}

// Details feeds the confirmation emails.
type Details struct {
	CustomerEmail string
	CustomerName  string
	PlanName      string
	Amount        string
	Currency      string
}

// FormatAmount renders minor units with two decimals: 4900 -> "49.00".
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	cents := minor % 100
	pad := ""
	if cents < 10 {
		pad = "0"
	}
	return sign + strconv.FormatInt(minor/100, 10) + "." + pad + strconv.FormatInt(cents, 10)
}

func FormatCurrency(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(code)
}

func (s Session) Verified() (VerifiedPayment, error) {
	id, err := s.Identity()
	if err != nil {
		return VerifiedPayment{}, err
	}
	return VerifiedPayment{Verified: true, CustomerName: id.Name, CustomerEmail: id.Email}, nil
}

func (s Session) Summary() (Details, error) {
	id, err := s.Identity()
	if err != nil {
		return Details{}, err
	}
	return Details{
		CustomerEmail: id.Email,
		CustomerName:  id.Name,
		PlanName:      s.PlanName(),
		Amount:        FormatAmount(s.AmountTotal),
		Currency:      FormatCurrency(s.Currency),
	}, nil
}
