package bootstrap

import (
	"jaac-backend/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	RedisModule,
	InfraModule,
	components.UseCaseModule,
	components.HandlerModule,
)
