package bootstrap

import (
	"context"
	"log/slog"

	"jaac-backend/internal/domain/booking"
	"jaac-backend/internal/domain/notification"
	"jaac-backend/internal/domain/plan"
	"jaac-backend/internal/infra/brevo"
	"jaac-backend/internal/infra/idempotency"
	"jaac-backend/internal/infra/metrics"
	"jaac-backend/internal/infra/storage"
	"jaac-backend/internal/infra/stripe"
	"jaac-backend/internal/pkg/clock"
	"jaac-backend/internal/pkg/config"
	"jaac-backend/internal/usecase/commands"
	"jaac-backend/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		clock.New,
		clock.NewRandom,
		fx.Annotate(
			metrics.New,
			fx.As(fx.Self()),
			fx.As(new(commands.Metrics)),
		),
		NewCatalog,
		NewBookingLinks,
		NewComposer,
	),
	paymentModule,
	storageModule,
	notificationModule,
	guardModule,
)

var paymentModule = fx.Module("infra/payment",
	fx.Provide(
		NewStripeAPI,
		fx.Annotate(
			stripe.NewGateway,
			fx.As(new(commands.PaymentGateway)),
			fx.As(new(queries.SessionReader)),
		),
		fx.Annotate(
			NewProvisioner,
			fx.As(new(commands.PriceResolver)),
		),
	),
)

var storageModule = fx.Module("infra/storage",
	fx.Provide(
		NewFileStore,
	),
)

var notificationModule = fx.Module("infra/notification",
	fx.Provide(
		NewBrevoClient,
		fx.Annotate(
			NewConfirmationDispatcher,
			fx.ResultTags(`name:"confirmation"`),
		),
	),
)

var guardModule = fx.Module("infra/guard",
	fx.Provide(
		NewConfirmationGuard,
	),
)

func NewCatalog(cfg config.Config) *plan.Catalog {
	return plan.NewCatalog(map[plan.ID]string{
		plan.Individual: cfg.Stripe.PriceIndividual,
		plan.CoupDeMain: cfg.Stripe.PriceCoupDeMain,
		plan.Enterprise: cfg.Stripe.PriceEnterprise,
	})
}

func NewBookingLinks(cfg config.Config) booking.Links {
	return booking.Links{
		ScriptURL: cfg.Scheduling.ScriptURL,
		InPerson:  cfg.Scheduling.InPersonURL,
		Virtual:   cfg.Scheduling.VirtualURL,
		UTM: booking.UTM{
			UTMSource: cfg.Scheduling.UTMSource,
			UTMMedium: cfg.Scheduling.UTMMedium,
		},
	}
}

func NewComposer(cfg config.Config) notification.Composer {
	return notification.Composer{
		Admin:           notification.Recipient{Email: cfg.Email.AdminAddress, Name: cfg.Email.AdminName},
		UserTemplateID:  cfg.Email.UserTemplateID,
		AdminTemplateID: cfg.Email.AdminTemplateID,
	}
}

func NewStripeAPI(cfg config.Config) *client.API {
	return stripe.NewAPI(cfg.Stripe)
}

func NewProvisioner(api *client.API, cfg config.Config, logger *slog.Logger) *stripe.Provisioner {
	return stripe.NewProvisioner(api, cfg.Stripe.ProvisionTestPrices, logger)
}

func NewFileStore(cfg config.Config, logger *slog.Logger) (commands.FileStore, error) {
	if cfg.Upload.Backend == config.UploadBackendS3 {
		client, err := storage.NewS3Client(context.Background(), cfg.Upload.S3Region)
		if err != nil {
			return nil, err
		}
		logger.Info("Uploads stored in S3", "bucket", cfg.Upload.S3Bucket)
		return storage.NewS3Store(client, cfg.Upload.S3Bucket, cfg.Upload.S3Region, cfg.Upload.S3Prefix, logger), nil
	}
	logger.Info("Uploads stored on disk", "dir", cfg.Upload.Dir)
	return storage.NewLocalStore(cfg.Upload.Dir, logger), nil
}

func NewBrevoClient(cfg config.Config, logger *slog.Logger, m *metrics.Metrics) *brevo.Client {
	return brevo.NewClient(brevo.Config{
		BaseURL: cfg.Email.BaseURL,
		APIKey:  cfg.Email.APIKey,
		Sender:  notification.Recipient{Email: cfg.Email.SenderAddress, Name: cfg.Email.SenderName},
		Timeout: cfg.Email.Timeout,
	}, logger, m)
}

// NewConfirmationDispatcher retries transient failures; confirmations are
// guarded against duplicates, lead forms are not.
func NewConfirmationDispatcher(client *brevo.Client, cfg config.Config, logger *slog.Logger) notification.Dispatcher {
	return brevo.NewRetryingDispatcher(client, cfg.Email.MaxRetries, logger)
}

func NewConfirmationGuard(rdb *redis.Client, clk clock.Clock, cfg config.Config, logger *slog.Logger) commands.ConfirmationGuard {
	if rdb == nil {
		return idempotency.NewMemoryGuard(clk, cfg.Redis.ConfirmationTTL)
	}
	return idempotency.NewRedisGuard(rdb, cfg.Redis.ConfirmationTTL, logger)
}
