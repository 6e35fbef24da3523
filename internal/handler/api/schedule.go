package api

import (
	"net/http"

	reqdto "jaac-backend/internal/handler/dto/request"
	resdto "jaac-backend/internal/handler/dto/response"
	"jaac-backend/internal/handler/httperr"
	"jaac-backend/internal/usecase/commands"
	"jaac-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	q    queries.SchedulingQueries
	cmds commands.SchedulingCommands
}

func NewScheduleHandler(q queries.SchedulingQueries, cmds commands.SchedulingCommands) *ScheduleHandler {
	return &ScheduleHandler{q: q, cmds: cmds}
}

// @Summary Scheduler widget
// @Description Widget configuration for a paid session, prefilled with the verified customer
// @Tags scheduling
// @Accept json
// @Produce json
// @Param request body reqdto.WidgetRequest true "Session and modality (in-person or virtual)"
// @Success 200 {object} resdto.WidgetResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /schedule/widget [post]
func (h *ScheduleHandler) Widget(c *gin.Context) {
	var req reqdto.WidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil)
		return
	}
	w, err := h.q.PrepareWidget(c.Request.Context(), req.SessionID, req.Modality)
	if err != nil {
		httperr.Abort(c, err, "Failed to verify payment")
		return
	}
	c.JSON(http.StatusOK, resdto.FromWidget(w))
}

// @Summary Booking made
// @Description Record that the customer booked a slot in the widget
// @Tags scheduling
// @Accept json
// @Produce json
// @Param request body reqdto.BookedRequest true "Session, modality and event"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Router /schedule/booked [post]
func (h *ScheduleHandler) Booked(c *gin.Context) {
	var req reqdto.BookedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil)
		return
	}
	if err := h.cmds.RecordBooking(c.Request.Context(), req); err != nil {
		httperr.Abort(c, err, "Failed to record booking")
		return
	}
	c.JSON(http.StatusOK, resdto.OK())
}
