//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"jaac-backend/internal/domain/booking"
	"jaac-backend/internal/handler/api"
	reqdto "jaac-backend/internal/handler/dto/request"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/tests/common/httptest"
	commandsmock "jaac-backend/tests/mock/commands"
	queriesmock "jaac-backend/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScheduleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockQueries  *queriesmock.MockSchedulingQueries
	mockCommands *commandsmock.MockSchedulingCommands
}

func (s *ScheduleHandlerTestSuite) SetupTest() {
	s.router = httptest.NewRouter(s.T())
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockSchedulingQueries(s.mockCtrl)
	s.mockCommands = commandsmock.NewMockSchedulingCommands(s.mockCtrl)

	h := api.NewScheduleHandler(s.mockQueries, s.mockCommands)
	s.router.POST("/api/schedule/widget", h.Widget)
	s.router.POST("/api/schedule/booked", h.Booked)
}

func (s *ScheduleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScheduleHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}

func (s *ScheduleHandlerTestSuite) TestWidget() {
	url := "/api/schedule/widget"
	req := reqdto.WidgetRequest{SessionID: "cs_test_a1", Modality: "in-person"}

	s.Run("success: widget is prefilled and has a popup URL", func() {
		s.mockQueries.EXPECT().PrepareWidget(gomock.Any(), "cs_test_a1", "in-person").Return(&booking.Widget{
			ScriptURL: "https://assets.calendly.com/assets/external/widget.js",
			URL:       "https://calendly.com/jaac-team/30-minutes",
			Modality:  booking.ModalityInPerson,
			Prefill:   booking.Prefill{Name: "Jane Doe", Email: "a@b.com"},
			UTM:       booking.UTM{UTMSource: "JAAC Website", UTMMedium: "Booking"},
			Display:   booking.DisplayOptions{HideGDPRBanner: true},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req)
		var got map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("https://calendly.com/jaac-team/30-minutes", got["url"])
		s.Equal(map[string]any{"name": "Jane Doe", "email": "a@b.com"}, got["prefill"])
		s.Equal(
			"https://calendly.com/jaac-team/30-minutes?email=a%40b.com&hide_gdpr_banner=1&name=Jane+Doe&utm_medium=Booking&utm_source=JAAC+Website",
			got["popupUrl"],
		)
	})

	s.Run("error: unverified payment shows no widget", func() {
		s.mockQueries.EXPECT().PrepareWidget(gomock.Any(), "cs_open", "virtual").
			Return(nil, errs.Failure(errs.ErrNotPaid, "Payment not completed", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.WidgetRequest{SessionID: "cs_open", Modality: "virtual"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Payment not completed")
	})
}

func (s *ScheduleHandlerTestSuite) TestBooked() {
	url := "/api/schedule/booked"

	s.Run("success", func() {
		req := reqdto.BookedRequest{SessionID: "cs_test_a1", Modality: "virtual", EventURI: "https://api.calendly.com/scheduled_events/ABC"}
		s.mockCommands.EXPECT().RecordBooking(gomock.Any(), req).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: event URI must be a URL", func() {
		s.mockCommands.EXPECT().RecordBooking(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.BookedRequest{SessionID: "cs_test_a1", Modality: "virtual", EventURI: "not a url"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request body")
	})
}
