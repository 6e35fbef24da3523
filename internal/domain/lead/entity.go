package lead

import (
	"strings"

	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/pkg/validation"
)

type ContactInquiry struct {
	fullName string
	email    string
	phone    string
	company  string
	message  string
}

func NewContactInquiry(fullName, email, phone, company, message string) (*ContactInquiry, error) {
	fields := map[string]string{
		"fullName": fullName,
		"email":    email,
		"phone":    phone,
		"company":  company,
		"message":  message,
	}
	if problems := validation.Validate(validation.FormContact, fields); len(problems) > 0 {
		return nil, errs.FieldErrors(problems)
	}

	return &ContactInquiry{
		fullName: strings.TrimSpace(fullName),
		email:    strings.TrimSpace(email),
		phone:    strings.TrimSpace(phone),
		company:  strings.TrimSpace(company),
		message:  strings.TrimSpace(message),
	}, nil
}

func (c *ContactInquiry) FullName() string { return c.fullName }
func (c *ContactInquiry) Email() string    { return c.email }
func (c *ContactInquiry) Phone() string    { return c.phone }
func (c *ContactInquiry) Company() string  { return c.company }
func (c *ContactInquiry) Message() string  { return c.message }

// Attachment is a résumé sent along with an application email.
type Attachment struct {
	Name    string
	Content []byte
	URL     string
}

type JobApplication struct {
	name       string
	email      string
	phone      string
	role       Role
	message    string
	attachment *Attachment
}

func NewJobApplication(name, email, phone, role, message string, attachment *Attachment) (*JobApplication, error) {
	fields := map[string]string{
		"name":    name,
		"email":   email,
		"phone":   phone,
		"role":    role,
		"message": message,
	}
	if problems := validation.Validate(validation.FormJoinUs, fields); len(problems) > 0 {
		return nil, errs.FieldErrors(problems)
	}

	r, err := NewRole(strings.TrimSpace(role))
	if err != nil {
		return nil, errs.FieldErrors{"role": "Invalid role"}
	}

	return &JobApplication{
		name:       strings.TrimSpace(name),
		email:      strings.TrimSpace(email),
		phone:      strings.TrimSpace(phone),
		role:       r,
		message:    strings.TrimSpace(message),
		attachment: attachment,
	}, nil
}

func (a *JobApplication) Name() string            { return a.name }
func (a *JobApplication) Email() string           { return a.email }
func (a *JobApplication) Phone() string           { return a.phone }
func (a *JobApplication) Role() Role              { return a.role }
func (a *JobApplication) Message() string         { return a.message }
func (a *JobApplication) Attachment() *Attachment { return a.attachment }

// Attach sets the résumé once it has been stored.
func (a *JobApplication) Attach(att *Attachment) { a.attachment = att }
