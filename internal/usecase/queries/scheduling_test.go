//go:build unit

package queries_test

import (
	"context"
	"testing"

	"jaac-backend/internal/domain/booking"
	"jaac-backend/internal/domain/payment"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/usecase/queries"
	queriesmock "jaac-backend/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var links = booking.Links{
	ScriptURL: "https://assets.calendly.com/assets/external/widget.js",
	InPerson:  "https://calendly.com/jaac/en-personne",
	Virtual:   "https://calendly.com/jaac/virtuel",
	UTM:       booking.UTM{UTMSource: "website", UTMMedium: "subscription"},
}

func TestPrepareWidget(t *testing.T) {
	t.Run("verified customer is prefilled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		payments := queriesmock.NewMockPaymentQueries(ctrl)
		payments.EXPECT().Verify(gomock.Any(), "cs_1").
			Return(&payment.VerifiedPayment{Verified: true, CustomerName: "Jane Doe", CustomerEmail: "a@b.com"}, nil)

		got, err := queries.NewSchedulingQueries(payments, links, discard).PrepareWidget(context.Background(), "cs_1", "google")
		require.NoError(t, err)

		want := &booking.Widget{
			ScriptURL: links.ScriptURL,
			URL:       links.Virtual,
			Modality:  booking.ModalityVirtual,
			Prefill:   booking.Prefill{Name: "Jane Doe", Email: "a@b.com"},
			UTM:       links.UTM,
			Display:   booking.DisplayOptions{HideGDPRBanner: true},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("widget mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid modality never reaches the processor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		payments := queriesmock.NewMockPaymentQueries(ctrl)
		payments.EXPECT().Verify(gomock.Any(), gomock.Any()).Times(0)

		_, err := queries.NewSchedulingQueries(payments, links, discard).PrepareWidget(context.Background(), "cs_1", "zoom")
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.Equal(t, "Invalid modality", errs.PublicMessage(err, ""))
	})

	t.Run("unverified payment shows no widget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		payments := queriesmock.NewMockPaymentQueries(ctrl)
		payments.EXPECT().Verify(gomock.Any(), "cs_missing").
			Return(nil, errs.Failure(errs.ErrNotFound, "Session not found", nil))

		got, err := queries.NewSchedulingQueries(payments, links, discard).PrepareWidget(context.Background(), "cs_missing", "in-person")
		assert.Nil(t, got)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestVerifiedBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	payments := queriesmock.NewMockPaymentQueries(ctrl)
	payments.EXPECT().Verify(gomock.Any(), "cs_1").
		Return(&payment.VerifiedPayment{Verified: true, CustomerName: "Jane Doe", CustomerEmail: "a@b.com"}, nil)

	s, err := queries.VerifiedBooking(context.Background(), payments, "cs_1", discard)
	require.NoError(t, err)
	assert.Equal(t, booking.StateVerified, s.State())
	assert.Equal(t, "cs_1", s.CheckoutID())
	assert.Equal(t, booking.Customer{Name: "Jane Doe", Email: "a@b.com"}, s.Customer())
}
