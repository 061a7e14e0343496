//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"aad/internal"
	"aad/internal/controllers"
	"aad/internal/providers"
	"aad/internal/services"
	"aad/internal/structures"
	"aad/internal/upstream"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewClockProvider,

		upstream.NewTokenCache,
		upstream.NewClient,
		services.NewAttendanceService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
