package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"jaac-backend/internal/handler/api"
	"jaac-backend/internal/handler/middleware"
	"jaac-backend/internal/infra/metrics"
	"jaac-backend/internal/pkg/config"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/pkg/validation"
)

// Leaves room above the 10MB file cap for the other form fields, so oversized
// files still reach the use case and get its error message.
const multipartBodyLimit = 12 << 20

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine   *gin.Engine
	Config   config.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Leads    *api.LeadHandler
	Uploads  *api.UploadHandler
	Checkout *api.CheckoutHandler
	Payments *api.PaymentHandler
	Schedule *api.ScheduleHandler
}

func NewRouter(p RouterParams) error {
	if err := registerValidation(); err != nil {
		return err
	}
	setupMiddleware(p.Engine, p.Config, p.Logger)
	setupRoutes(p)
	return nil
}

func registerValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errs.New("unexpected binding validator engine")
	}
	return errs.Wrap(validation.Register(v), "failed to register validators")
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	if p.Config.Upload.Backend == config.UploadBackendLocal {
		engine.Static("/uploads", p.Config.Upload.Dir)
	}

	debug := gin.Mode() == gin.DebugMode
	if debug {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bodyLimit := []gin.HandlerFunc{middleware.MaxBodySize(multipartBodyLimit)}
		addRoutes(apiGroup, []route{
			// leads
			{Method: http.MethodPost, Path: "/contact", Handler: p.Leads.Contact},
			{Method: http.MethodPost, Path: "/join-us", Handler: p.Leads.JoinUs, Mw: bodyLimit},
			{Method: http.MethodPost, Path: "/upload", Handler: p.Uploads.Upload, Mw: bodyLimit},
			// checkout
			{Method: http.MethodGet, Path: "/plans", Handler: p.Checkout.ListPlans},
			{Method: http.MethodPost, Path: "/create-checkout-session", Handler: p.Checkout.CreateCheckoutSession},
			// payments
			{Method: http.MethodPost, Path: "/verify-payment", Handler: p.Payments.VerifyPayment},
			{Method: http.MethodPost, Path: "/get-session-details", Handler: p.Payments.GetSessionDetails},
			{Method: http.MethodPost, Path: "/send-confirmation-emails", Handler: p.Payments.SendConfirmationEmails},
			{Method: http.MethodPost, Path: "/confirm-payment", Handler: p.Payments.ConfirmPayment},
		})

		schedule := apiGroup.Group("/schedule")
		addRoutes(schedule, []route{
			{Method: http.MethodPost, Path: "/widget", Handler: p.Schedule.Widget},
			{Method: http.MethodPost, Path: "/booked", Handler: p.Schedule.Booked},
		})

		if debug {
			addRoutes(apiGroup, []route{
				{Method: http.MethodPost, Path: "/test-email", Handler: p.Payments.TestEmail},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
