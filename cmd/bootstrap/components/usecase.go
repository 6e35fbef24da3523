package components

import (
	"log/slog"

	"jaac-backend/internal/domain/notification"
	"jaac-backend/internal/domain/plan"
	"jaac-backend/internal/infra/brevo"
	"jaac-backend/internal/pkg/config"
	"jaac-backend/internal/usecase/commands"
	"jaac-backend/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewUploadUseCase,
		commands.NewSchedulingUseCase,
		NewLeadCommands,
		NewCheckoutCommands,
		fx.Annotate(
			NewConfirmationCommands,
			fx.ParamTags(``, `name:"confirmation"`),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPaymentQueries,
		queries.NewSchedulingQueries,
		queries.NewPlanQueries,
	),
)

// Lead forms are sent once; a failure is reported to the visitor, who can resubmit.
func NewLeadCommands(
	cfg config.Config,
	composer notification.Composer,
	client *brevo.Client,
	uploads commands.UploadCommands,
	logger *slog.Logger,
) commands.LeadCommands {
	return commands.NewLeadUseCase(composer, client, uploads, cfg.Site.BaseURL, logger)
}

func NewCheckoutCommands(
	cfg config.Config,
	catalog *plan.Catalog,
	prices commands.PriceResolver,
	gateway commands.PaymentGateway,
	metrics commands.Metrics,
	logger *slog.Logger,
) commands.CheckoutCommands {
	return commands.NewCheckoutUseCase(catalog, prices, gateway, cfg.Site.BaseURL, metrics, logger)
}

func NewConfirmationCommands(
	cfg config.Config,
	dispatcher notification.Dispatcher,
	payments queries.PaymentQueries,
	composer notification.Composer,
	guard commands.ConfirmationGuard,
	logger *slog.Logger,
) commands.ConfirmationCommands {
	testRecipient := notification.Recipient{Email: cfg.Email.SenderAddress, Name: cfg.Email.SenderName}
	return commands.NewConfirmationUseCase(payments, composer, dispatcher, guard, testRecipient, logger)
}
