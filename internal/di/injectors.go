//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"rollcall/internal"
	"rollcall/internal/backend"
	"rollcall/internal/controllers"
	"rollcall/internal/housekeeping"
	"rollcall/internal/providers"
	"rollcall/internal/services"
	"rollcall/internal/structures"
)

var infrastructureSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	backend.NewClient,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		infrastructureSet,
		providers.NewInstrumentedCacheProvider,

		services.NewAttendanceService,
		services.NewScanService,
		services.NewDashboardService,
		housekeeping.NewScheduler,
		controllers.NewCatalogController,
		controllers.NewRosterController,
		controllers.NewScanController,
		controllers.NewDashboardController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}

func InitScanConsole(cfg *structures.CliFlags) (*internal.ScanConsole, error) {

	wire.Build(
		infrastructureSet,
		services.NewScanService,
		internal.NewScanConsole,
	)

	return nil, nil
}
