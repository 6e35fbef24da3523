//go:build unit

package notification_test

import (
	"testing"

	"jaac-backend/internal/domain/lead"
	"jaac-backend/internal/domain/notification"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var composer = notification.Composer{
	Admin:           notification.Recipient{Email: "admin@example.com", Name: "JAAC Admin"},
	UserTemplateID:  1,
	AdminTemplateID: 2,
}

var conf = notification.Confirmation{
	CustomerEmail: "a@b.com",
	CustomerName:  "Jane Doe",
	PlanName:      "Plan Individuel",
	Amount:        "49.00",
	Currency:      "CAD",
}

func TestComposer_UserConfirmation(t *testing.T) {
	msg, err := composer.UserConfirmation(conf)
	require.NoError(t, err)

	expected := notification.Message{
		Kind:       notification.KindUserConfirmation,
		To:         []notification.Recipient{{Email: "a@b.com", Name: "Jane Doe"}},
		TemplateID: 1,
		Params: map[string]string{
			"name":     "Jane Doe",
			"planName": "Plan Individuel",
			"amount":   "49.00",
			"currency": "CAD",
		},
	}
	if diff := cmp.Diff(expected, msg); diff != "" {
		t.Errorf("UserConfirmation mismatch (-want +got):\n%s", diff)
	}
}

func TestComposer_AdminNotification(t *testing.T) {
	msg, err := composer.AdminNotification(conf)
	require.NoError(t, err)

	assert.Equal(t, notification.KindAdminNotification, msg.Kind)
	assert.Equal(t, []notification.Recipient{composer.Admin}, msg.To)
	assert.Equal(t, int64(2), msg.TemplateID)
	assert.Equal(t, "a@b.com", msg.Params["customerEmail"])
	assert.Equal(t, "Jane Doe", msg.Params["customerName"])
}

func TestComposer_ConfirmationRequiresCustomer(t *testing.T) {
	_, err := composer.UserConfirmation(notification.Confirmation{CustomerName: "Jane"})
	assert.ErrorIs(t, err, notification.ErrMissingRecipient)

	_, err = composer.AdminNotification(notification.Confirmation{CustomerEmail: "a@b.com"})
	assert.ErrorIs(t, err, notification.ErrMissingRecipient)
}

func TestComposer_ContactInquiry(t *testing.T) {
	in, err := lead.NewContactInquiry("Jane <b>Doe</b>", "a@b.com", "", "Acme", "Bonjour\nJ'ai une question")
	require.NoError(t, err)

	msg, err := composer.ContactInquiry(in)
	require.NoError(t, err)

	assert.Equal(t, notification.KindContactInquiry, msg.Kind)
	assert.Equal(t, []notification.Recipient{composer.Admin}, msg.To)
	require.NotNil(t, msg.ReplyTo)
	assert.Equal(t, "a@b.com", msg.ReplyTo.Email)
	assert.Contains(t, msg.HTMLContent, "Jane &lt;b&gt;Doe&lt;/b&gt;")
	assert.Contains(t, msg.HTMLContent, "Bonjour<br>J&#39;ai une question")
	assert.Contains(t, msg.HTMLContent, "Acme")
	assert.NotContains(t, msg.HTMLContent, "Téléphone")
	assert.Zero(t, msg.TemplateID)
}

func TestComposer_JobApplication(t *testing.T) {
	t.Run("with attachment", func(t *testing.T) {
		att := &lead.Attachment{Name: "cv.pdf", Content: []byte("%PDF-1.4")}
		app, err := lead.NewJobApplication("Jane Doe", "a@b.com", "+1 514 555 0000", "Speaker", "Hello", att)
		require.NoError(t, err)

		msg, err := composer.JobApplication(app)
		require.NoError(t, err)

		assert.Equal(t, "Nouvelle candidature: Speaker", msg.Subject)
		assert.Contains(t, msg.HTMLContent, "Intervenant")
		assert.Contains(t, msg.HTMLContent, "CV en pièce jointe")
		require.Len(t, msg.Attachments, 1)
		assert.Equal(t, "cv.pdf", msg.Attachments[0].Name)
	})

	t.Run("without attachment", func(t *testing.T) {
		app, err := lead.NewJobApplication("Jane Doe", "a@b.com", "5145550000", "Other", "Hello", nil)
		require.NoError(t, err)

		msg, err := composer.JobApplication(app)
		require.NoError(t, err)

		assert.Empty(t, msg.Attachments)
		assert.NotContains(t, msg.HTMLContent, "CV en pièce jointe")
	})
}

func TestMessage_Validate(t *testing.T) {
	assert.ErrorIs(t, notification.Message{}.Validate(), notification.ErrMissingRecipient)
	assert.ErrorIs(t, notification.Message{To: []notification.Recipient{{Name: "x"}}}.Validate(), notification.ErrMissingRecipient)
	assert.NoError(t, notification.Message{To: []notification.Recipient{{Email: "a@b.com"}}}.Validate())
}
