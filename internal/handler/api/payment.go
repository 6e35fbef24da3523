package api

import (
	"net/http"

	reqdto "jaac-backend/internal/handler/dto/request"
	resdto "jaac-backend/internal/handler/dto/response"
	"jaac-backend/internal/handler/httperr"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/usecase/commands"
	"jaac-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments      queries.PaymentQueries
	confirmations commands.ConfirmationCommands
}

func NewPaymentHandler(payments queries.PaymentQueries, confirmations commands.ConfirmationCommands) *PaymentHandler {
	return &PaymentHandler{payments: payments, confirmations: confirmations}
}

// @Summary Verify payment
// @Description Confirm that a checkout session is paid and return the customer identity
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.SessionRequest true "Checkout session"
// @Success 200 {object} resdto.VerifyPaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /verify-payment [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req reqdto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil)
		return
	}
	v, err := h.payments.Verify(c.Request.Context(), req.SessionID)
	if err != nil {
		var opts []httperr.Option
		if errs.Is(err, errs.ErrNotPaid) {
			opts = append(opts, httperr.WithVerifiedFlag())
		}
		httperr.Abort(c, err, "Failed to verify payment", opts...)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerifiedPayment(v))
}

// @Summary Session details
// @Description Customer, plan and amount of a paid checkout session
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.SessionRequest true "Checkout session"
// @Success 200 {object} resdto.SessionDetailsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /get-session-details [post]
func (h *PaymentHandler) GetSessionDetails(c *gin.Context) {
	var req reqdto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil, httperr.WithSuccessFlag())
		return
	}
	d, err := h.payments.SessionDetails(c.Request.Context(), req.SessionID)
	if err != nil {
		httperr.Abort(c, err, "Failed to retrieve session details", httperr.WithSuccessFlag())
		return
	}
	c.JSON(http.StatusOK, resdto.FromDetails(*d))
}

// @Summary Send confirmation emails
// @Description Send the customer confirmation and the admin notification. With a sessionId the pair is sent at most once.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.SendConfirmationRequest true "Purchase details"
// @Success 200 {object} resdto.SendConfirmationResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /send-confirmation-emails [post]
func (h *PaymentHandler) SendConfirmationEmails(c *gin.Context) {
	var req reqdto.SendConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil)
		return
	}
	res, err := h.confirmations.SendConfirmationEmails(c.Request.Context(), req)
	if err != nil {
		httperr.Abort(c, err, "Failed to send confirmation emails")
		return
	}
	c.JSON(http.StatusOK, resdto.SendConfirmationResponse{Success: true, AlreadySent: res.AlreadySent})
}

// @Summary Confirm payment
// @Description Verify a checkout session and send its confirmation emails once
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.SessionRequest true "Checkout session"
// @Success 200 {object} resdto.ConfirmPaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /confirm-payment [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req reqdto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil, httperr.WithSuccessFlag())
		return
	}
	res, err := h.confirmations.ConfirmPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		httperr.Abort(c, err, "Failed to confirm payment", httperr.WithSuccessFlag())
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmation(res))
}

// @Summary Test email
// @Description Send a sample confirmation pair to the team inbox. Debug mode only.
// @Tags payments
// @Produce json
// @Success 200 {object} resdto.TestEmailResponse
// @Failure 500 {object} resdto.TestEmailResponse
// @Router /test-email [post]
func (h *PaymentHandler) TestEmail(c *gin.Context) {
	res, err := h.confirmations.SendTestEmails(c.Request.Context())
	if res == nil {
		httperr.Abort(c, err, "Failed to send test emails")
		return
	}
	status := http.StatusOK
	if err != nil {
		_ = c.Error(err)
		status = http.StatusInternalServerError
	}
	c.JSON(status, resdto.FromTestDispatch(res))
}
