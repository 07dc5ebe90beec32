//go:build wireinject
// +build wireinject

package di

import (
	"LipeCore/pkg/config"
	"LipeCore/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideHistoryProvider,
		ProvideShareStore,
		ProvideEventPublisher,

		// Domain services
		ProvideSignalScorer,
		ProvidePathProjector,
		ProvideBacktester,

		// Use cases
		ProvideForecastUseCase,
		ProvideStrategyUseCase,
		ProvideShareRegistry,

		// HTTP
		ProvideRateLimiter,
		ProvideHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
