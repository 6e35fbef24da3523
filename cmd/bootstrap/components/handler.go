package components

import (
	"jaac-backend/internal/handler"
	"jaac-backend/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewLeadHandler,
		api.NewUploadHandler,
		api.NewCheckoutHandler,
		api.NewPaymentHandler,
		api.NewScheduleHandler,
	),
	fx.Invoke(handler.NewRouter),
)
