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

type CheckoutHandler struct {
	cmds  commands.CheckoutCommands
	plans queries.PlanQueries
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, plans queries.PlanQueries) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, plans: plans}
}

// @Summary Create checkout session
// @Description Start a hosted checkout for a plan. Subscription plans recur monthly; Coup de Pouce is a one-time payment.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCheckoutRequest true "Plan and customer"
// @Success 200 {object} resdto.CheckoutSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /create-checkout-session [post]
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	var req reqdto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil)
		return
	}
	out, err := h.cmds.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		httperr.Abort(c, err, "Failed to create checkout session")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutSession(out))
}

// @Summary List plans
// @Description Pricing tiers with their display price and billing mode
// @Tags checkout
// @Produce json
// @Success 200 {array} queries.PlanView
// @Router /plans [get]
func (h *CheckoutHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.plans.ListPlans())
}
