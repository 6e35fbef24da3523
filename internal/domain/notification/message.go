package notification

//go:generate mockgen -source=message.go -destination=../../../tests/mock/notification/message.go -package=notificationmock

import (
	"context"
	"errors"
)

var ErrMissingRecipient = errors.New("Missing required email data")

type Kind string

const (
	KindUserConfirmation  Kind = "user-confirmation"
	KindAdminNotification Kind = "admin-notification"
	KindContactInquiry    Kind = "contact-inquiry"
	KindJobApplication    Kind = "job-application"
)

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Attachment struct {
	Name    string
	Content []byte
}

// Message is either template based (TemplateID > 0) or carries its own
// Subject and HTMLContent.
type Message struct {
	Kind        Kind
	To          []Recipient
	ReplyTo     *Recipient
	Subject     string
	HTMLContent string
	TemplateID  int64
	Params      map[string]string
	Attachments []Attachment
}

func (m Message) Validate() error {
	if len(m.To) == 0 {
		return ErrMissingRecipient
	}
	for _, r := range m.To {
		if r.Email == "" {
			return ErrMissingRecipient
		}
	}
	return nil
}

// Result reports one dispatch. A failed send is a Result, never an error.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	// Retryable marks transport failures and 5xx/429 responses.
	Retryable bool `json:"-"`
}

func Failed(reason string, retryable bool) Result {
	return Result{Error: reason, Retryable: retryable}
}

type Dispatcher interface {
	Send(ctx context.Context, msg Message) Result
}
