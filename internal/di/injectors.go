//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"resultsd/internal"
	"resultsd/internal/controllers"
	"resultsd/internal/providers"
	"resultsd/internal/repositories"
	"resultsd/internal/scheduler"
	"resultsd/internal/services"
	"resultsd/internal/structures"
)

var infraSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewMongoProvider,
	providers.NewStoreGuard,
	providers.NewClockProvider,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		infraSet,
		providers.NewZstdCompressor,
		providers.NewInstrumentedCacheProvider,
		providers.NewCacheKeyring,
		providers.NewLocationProvider,
		providers.NewStorePinger,

		repositories.NewResultRepository,
		repositories.NewFlatResultRepository,
		repositories.NewCategoryRepository,
		repositories.NewUserRepository,
		internal.NewStores,

		services.NewResultService,
		services.NewFlatResultService,
		services.NewQueryService,
		services.NewCategoryService,
		services.NewAppConfigService,
		services.NewMailer,
		services.NewAuthService,
		scheduler.NewScheduler,

		controllers.NewResultController,
		controllers.NewCategoryController,
		controllers.NewAuthController,
		controllers.NewAppConfigController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}

// InitUserAdmin builds only what the user management commands need.
func InitUserAdmin(cfg *structures.CliFlags) (services.AuthServiceInterface, func(), error) {

	wire.Build(
		infraSet,
		repositories.NewUserRepository,
		services.NewMailer,
		services.NewAuthService,
	)

	return nil, nil, nil
}
