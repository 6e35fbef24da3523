//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"jaac-backend/internal/domain/notification"
	"jaac-backend/internal/infra/idempotency"
	"jaac-backend/internal/pkg/clock"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/usecase/commands"
	"jaac-backend/tests/common/builder"
	commandsmock "jaac-backend/tests/mock/commands"
	notificationmock "jaac-backend/tests/mock/notification"
	queriesmock "jaac-backend/tests/mock/queries"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var composer = notification.Composer{
	Admin:           notification.Recipient{Email: "admin@jaac.ca", Name: "JAAC Admin"},
	UserTemplateID:  1,
	AdminTemplateID: 2,
}

// dispatchBy answers each message according to its kind.
func dispatchBy(results map[notification.Kind]notification.Result) func(context.Context, notification.Message) notification.Result {
	return func(_ context.Context, m notification.Message) notification.Result {
		return results[m.Kind]
	}
}

type ConfirmationTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	payments   *queriesmock.MockPaymentQueries
	dispatcher *notificationmock.MockDispatcher
	guard      *commandsmock.MockConfirmationGuard
}

func (s *ConfirmationTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.payments = queriesmock.NewMockPaymentQueries(s.ctrl)
	s.dispatcher = notificationmock.NewMockDispatcher(s.ctrl)
	s.guard = commandsmock.NewMockConfirmationGuard(s.ctrl)
}

func (s *ConfirmationTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestConfirmationTestSuite(t *testing.T) {
	suite.Run(t, new(ConfirmationTestSuite))
}

func (s *ConfirmationTestSuite) newUseCase(guard commands.ConfirmationGuard) commands.ConfirmationCommands {
	return commands.NewConfirmationUseCase(s.payments, composer, s.dispatcher, guard,
		notification.Recipient{Email: "jaac.team@gmail.com"}, discard)
}

func (s *ConfirmationTestSuite) TestConfirmPayment_SendsPairOncePerSession() {
	guard := idempotency.NewMemoryGuard(clock.New(), time.Hour)
	uc := s.newUseCase(guard)
	session := builder.NewSessionBuilder()

	s.payments.EXPECT().SessionDetails(gomock.Any(), "cs_test_a1").
		Return(session.BuildDetails(), nil).Times(2)

	var sent atomic.Int32
	s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m notification.Message) notification.Result {
			sent.Add(1)
			return notification.Result{Success: true}
		}).Times(2)

	first, err := uc.ConfirmPayment(context.Background(), "cs_test_a1")
	s.Require().NoError(err)
	s.False(first.AlreadySent)
	s.True(first.User.Success)
	s.True(first.Admin.Success)
	s.Equal("29.00", first.Details.Amount)
	s.Equal("CAD", first.Details.Currency)

	// re-render of the success page
	second, err := uc.ConfirmPayment(context.Background(), "cs_test_a1")
	s.Require().NoError(err)
	s.True(second.AlreadySent)
	s.Equal(int32(2), sent.Load())
}

func (s *ConfirmationTestSuite) TestConfirmPayment_RetryResendsOnlyUndeliveredSide() {
	guard := idempotency.NewMemoryGuard(clock.New(), time.Hour)
	uc := s.newUseCase(guard)
	session := builder.NewSessionBuilder()

	s.payments.EXPECT().SessionDetails(gomock.Any(), "cs_test_a1").
		Return(session.BuildDetails(), nil).Times(3)

	var userSends, adminSends atomic.Int32
	s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m notification.Message) notification.Result {
			if m.Kind == notification.KindUserConfirmation {
				if userSends.Add(1) == 1 {
					return notification.Failed("temporarily unavailable", true)
				}
				return notification.Result{Success: true}
			}
			adminSends.Add(1)
			return notification.Result{Success: true}
		}).Times(3)

	_, err := uc.ConfirmPayment(context.Background(), "cs_test_a1")
	s.True(errs.Is(err, errs.ErrEmailDispatch))

	retry, err := uc.ConfirmPayment(context.Background(), "cs_test_a1")
	s.Require().NoError(err)
	s.False(retry.AlreadySent)
	s.True(retry.User.Success)
	s.True(retry.Admin.Success)

	third, err := uc.ConfirmPayment(context.Background(), "cs_test_a1")
	s.Require().NoError(err)
	s.True(third.AlreadySent)

	s.Equal(int32(2), userSends.Load())
	s.Equal(int32(1), adminSends.Load())
}

func (s *ConfirmationTestSuite) TestConfirmPayment_UnverifiedSessionSendsNothing() {
	uc := s.newUseCase(s.guard)
	notPaid := errs.Failure(errs.ErrNotPaid, "Payment not completed", nil)
	s.payments.EXPECT().SessionDetails(gomock.Any(), "cs_open").Return(nil, notPaid)

	_, err := uc.ConfirmPayment(context.Background(), "cs_open")
	s.True(errs.Is(err, errs.ErrNotPaid))
}

func (s *ConfirmationTestSuite) TestSendConfirmationEmails() {
	dto := builder.NewSessionBuilder().BuildConfirmationDTO()

	userKey, adminKey := dto.SessionID+":user", dto.SessionID+":admin"

	s.Run("pair carries the template params", func() {
		uc := s.newUseCase(s.guard)
		s.guard.EXPECT().Acquire(gomock.Any(), userKey).Return("tok-u", true, nil)
		s.guard.EXPECT().Acquire(gomock.Any(), adminKey).Return("tok-a", true, nil)

		var user, admin notification.Message
		s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m notification.Message) notification.Result {
				if m.Kind == notification.KindUserConfirmation {
					user = m
				} else {
					admin = m
				}
				return notification.Result{Success: true}
			}).Times(2)

		res, err := uc.SendConfirmationEmails(context.Background(), dto)
		s.Require().NoError(err)
		s.False(res.AlreadySent)
		s.Equal(int64(1), user.TemplateID)
		s.Equal("a@b.com", user.To[0].Email)
		s.Equal("Coup de Pouce", user.Params["planName"])
		s.Equal(int64(2), admin.TemplateID)
		s.Equal("admin@jaac.ca", admin.To[0].Email)
		s.Equal("Jane Doe", admin.Params["customerName"])
	})

	s.Run("partial failure releases only the failed side", func() {
		uc := s.newUseCase(s.guard)
		s.guard.EXPECT().Acquire(gomock.Any(), userKey).Return("tok-u", true, nil)
		s.guard.EXPECT().Acquire(gomock.Any(), adminKey).Return("tok-a", true, nil)
		s.guard.EXPECT().Release(gomock.Any(), adminKey, "tok-a").Return(nil)
		s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(dispatchBy(map[notification.Kind]notification.Result{
				notification.KindUserConfirmation:  {Success: true},
				notification.KindAdminNotification: notification.Failed("invalid sender", false),
			})).Times(2)

		res, err := uc.SendConfirmationEmails(context.Background(), dto)
		s.True(errs.Is(err, errs.ErrEmailDispatch))
		s.Equal("Failed to send confirmation emails", errs.PublicMessage(err, ""))
		s.True(res.User.Success)
		s.False(res.Admin.Success)

		details, ok := errs.Details(err)
		s.Require().True(ok)
		d := details.(map[string]*string)
		s.Nil(d["user"])
		s.Require().NotNil(d["admin"])
		s.Equal("invalid sender", *d["admin"])
	})

	s.Run("total failure releases both claims for a retry", func() {
		uc := s.newUseCase(s.guard)
		s.guard.EXPECT().Acquire(gomock.Any(), userKey).Return("tok-u", true, nil)
		s.guard.EXPECT().Acquire(gomock.Any(), adminKey).Return("tok-a", true, nil)
		s.guard.EXPECT().Release(gomock.Any(), userKey, "tok-u").Return(nil)
		s.guard.EXPECT().Release(gomock.Any(), adminKey, "tok-a").Return(nil)
		s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
			Return(notification.Failed("provider down", true)).Times(2)

		_, err := uc.SendConfirmationEmails(context.Background(), dto)
		s.True(errs.Is(err, errs.ErrEmailDispatch))
	})

	s.Run("guard outage still sends", func() {
		uc := s.newUseCase(s.guard)
		s.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).
			Return("", false, errors.New("redis: connection refused")).Times(2)
		s.guard.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).Return(notification.Result{Success: true}).Times(2)

		res, err := uc.SendConfirmationEmails(context.Background(), dto)
		s.Require().NoError(err)
		s.False(res.AlreadySent)
	})

	s.Run("without session id no guard is used", func() {
		uc := s.newUseCase(s.guard)
		noSession := dto
		noSession.SessionID = ""
		s.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Times(0)
		s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).Return(notification.Result{Success: true}).Times(2)

		_, err := uc.SendConfirmationEmails(context.Background(), noSession)
		s.Require().NoError(err)
	})

	s.Run("missing customer email is rejected before any send", func() {
		uc := s.newUseCase(s.guard)
		missing := dto
		missing.CustomerEmail = " "
		s.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Times(0)
		s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.SendConfirmationEmails(context.Background(), missing)
		s.True(errs.Is(err, errs.ErrValidation))
		s.Equal("Missing required email data", errs.PublicMessage(err, ""))
	})
}

func (s *ConfirmationTestSuite) TestSendTestEmails() {
	uc := s.newUseCase(s.guard)
	s.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Times(0)

	var user notification.Message
	s.dispatcher.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m notification.Message) notification.Result {
			if m.Kind == notification.KindUserConfirmation {
				user = m
			}
			return notification.Result{Success: true, MessageID: "<id@brevo>"}
		}).Times(2)

	res, err := uc.SendTestEmails(context.Background())
	s.Require().NoError(err)
	s.Equal("jaac.team@gmail.com", user.To[0].Email)
	s.Equal("Test User", user.Params["name"])
	s.Equal("49.00", res.Details.Amount)
	s.Equal("<id@brevo>", res.User.MessageID)
}
