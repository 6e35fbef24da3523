package notification

import (
	"bytes"
	"html/template"
	"strings"

	"jaac-backend/internal/domain/lead"
)

// Confirmation is the data shared by the user and admin emails after a payment.
type Confirmation struct {
	CustomerEmail string
	CustomerName  string
	PlanName      string
	Amount        string
	Currency      string
}

// Composer turns domain events into messages addressed to the right people.
type Composer struct {
	Admin           Recipient
	UserTemplateID  int64
	AdminTemplateID int64
}

func (c Composer) UserConfirmation(conf Confirmation) (Message, error) {
	if conf.CustomerEmail == "" || conf.CustomerName == "" {
		return Message{}, ErrMissingRecipient
	}
	return Message{
		Kind:       KindUserConfirmation,
		To:         []Recipient{{Email: conf.CustomerEmail, Name: conf.CustomerName}},
		TemplateID: c.UserTemplateID,
		Params: map[string]string{
			"name":     conf.CustomerName,
			"planName": conf.PlanName,
			"amount":   conf.Amount,
			"currency": conf.Currency,
		},
	}, nil
}

func (c Composer) AdminNotification(conf Confirmation) (Message, error) {
	if conf.CustomerEmail == "" || conf.CustomerName == "" {
		return Message{}, ErrMissingRecipient
	}
	return Message{
		Kind:       KindAdminNotification,
		To:         []Recipient{c.Admin},
		TemplateID: c.AdminTemplateID,
		Params: map[string]string{
			"customerName":  conf.CustomerName,
			"customerEmail": conf.CustomerEmail,
			"planName":      conf.PlanName,
			"amount":        conf.Amount,
			"currency":      conf.Currency,
		},
	}, nil
}

func (c Composer) ContactInquiry(in *lead.ContactInquiry) (Message, error) {
	body, err := render(contactTmpl, map[string]any{
		"FullName": in.FullName(),
		"Email":    in.Email(),
		"Phone":    in.Phone(),
		"Company":  in.Company(),
		"Lines":    lines(in.Message()),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Kind:        KindContactInquiry,
		To:          []Recipient{c.Admin},
		ReplyTo:     &Recipient{Email: in.Email(), Name: in.FullName()},
		Subject:     "Nouveau message de contact: " + in.FullName(),
		HTMLContent: body,
	}, nil
}

func (c Composer) JobApplication(app *lead.JobApplication) (Message, error) {
	att := app.Attachment()
	body, err := render(jobTmpl, map[string]any{
		"Name":          app.Name(),
		"Email":         app.Email(),
		"Phone":         app.Phone(),
		"Role":          app.Role().Label(),
		"Lines":         lines(app.Message()),
		"HasAttachment": att != nil,
		"AttachmentURL": attachmentURL(att),
	})
	if err != nil {
		return Message{}, err
	}
	msg := Message{
		Kind:        KindJobApplication,
		To:          []Recipient{c.Admin},
		ReplyTo:     &Recipient{Email: app.Email(), Name: app.Name()},
		Subject:     "Nouvelle candidature: " + app.Role().String(),
		HTMLContent: body,
	}
	if att != nil && len(att.Content) > 0 {
		msg.Attachments = []Attachment{{Name: att.Name, Content: att.Content}}
	}
	return msg, nil
}

func attachmentURL(a *lead.Attachment) string {
	if a == nil {
		return ""
	}
	return a.URL
}

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const cardOpen = `<div style="font-family: Arial, sans-serif; background: #fff; padding: 24px; max-width: 600px; margin: 0 auto; border: 1px solid #e5e7eb; border-radius: 8px;">`

var contactTmpl = template.Must(template.New("contact").Parse(cardOpen + `
<h2 style="margin-top: 0; color: #222; font-size: 1.5rem;">Nouveau message de contact</h2>
<table style="width: 100%; border-collapse: collapse; margin-bottom: 18px; font-size: 1rem;">
<tr><td style="font-weight: bold; padding: 6px 0; width: 120px;">Nom</td><td style="padding: 6px 0;">{{.FullName}}</td></tr>
<tr><td style="font-weight: bold; padding: 6px 0;">Email</td><td style="padding: 6px 0;">{{.Email}}</td></tr>
{{if .Phone}}<tr><td style="font-weight: bold; padding: 6px 0;">Téléphone</td><td style="padding: 6px 0;">{{.Phone}}</td></tr>{{end}}
{{if .Company}}<tr><td style="font-weight: bold; padding: 6px 0;">Entreprise</td><td style="padding: 6px 0;">{{.Company}}</td></tr>{{end}}
</table>
<div style="font-weight: bold; margin-bottom: 6px; color: #444;">Message</div>
<div style="background: #f7f7f7; border-radius: 4px; padding: 12px; color: #222; border: 1px solid #e5e7eb;">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
</div>`))

var jobTmpl = template.Must(template.New("job").Parse(cardOpen + `
<h2 style="margin-top: 0; color: #222; font-size: 1.5rem;">Nouvelle candidature reçue</h2>
<table style="width: 100%; border-collapse: collapse; margin-bottom: 18px; font-size: 1rem;">
<tr><td style="font-weight: bold; padding: 6px 0; width: 120px;">Nom</td><td style="padding: 6px 0;">{{.Name}}</td></tr>
<tr><td style="font-weight: bold; padding: 6px 0;">Email</td><td style="padding: 6px 0;">{{.Email}}</td></tr>
<tr><td style="font-weight: bold; padding: 6px 0;">Téléphone</td><td style="padding: 6px 0;">{{.Phone}}</td></tr>
<tr><td style="font-weight: bold; padding: 6px 0;">Poste</td><td style="padding: 6px 0;">{{.Role}}</td></tr>
</table>
<div style="margin-bottom: 18px;">
<div style="font-weight: bold; margin-bottom: 6px; color: #444;">Lettre de motivation / Message</div>
<div style="background: #f7f7f7; border-radius: 4px; padding: 12px; color: #222; border: 1px solid #e5e7eb;">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
</div>
{{if .HasAttachment}}<div style="margin-top: 18px; color: #555; font-size: 1rem;">CV en pièce jointe{{if .AttachmentURL}} (<a href="{{.AttachmentURL}}">lien</a>){{end}}</div>{{end}}
</div>`))
