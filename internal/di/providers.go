package di

import (
	"fmt"
	"time"

	drepo "LipeCore/internal/domain/repository"
	domsvc "LipeCore/internal/domain/service"
	"LipeCore/internal/handler/api"
	internalrepo "LipeCore/internal/repository"
	"LipeCore/internal/service/ratelimit"
	"LipeCore/internal/services/analytics"
	"LipeCore/internal/services/marketdata"
	"LipeCore/internal/usecase"
	pkgcache "LipeCore/pkg/cache"
	"LipeCore/pkg/config"
	xhttp "LipeCore/pkg/http"
	pkgkafka "LipeCore/pkg/kafka"
	applogger "LipeCore/pkg/logger"
	"LipeCore/pkg/metrics"
	"LipeCore/pkg/server"
)

// ProvideLogger creates the application logger from the logging section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.Default()
}

// ProvideHistoryProvider creates the market data provider. Live Binance data is
// optional; the synthetic series is always available as a fallback.
func ProvideHistoryProvider(cfg *config.Config, m drepo.Metrics, l *applogger.Logger) drepo.HistoryProvider {
	var live marketdata.LiveSource
	if cfg.MarketData.Live {
		live = marketdata.NewBinanceSource(
			marketdata.WithBinanceBaseURL(cfg.MarketData.BaseURL),
			marketdata.WithBinanceCredentials(cfg.MarketData.APIKey, cfg.MarketData.SecretKey),
			marketdata.WithFetchTimeout(cfg.MarketData.Timeout),
		)
	}
	p := marketdata.NewProvider(live, marketdata.NewSyntheticSource(time.Now), m)
	p.SetLogger(l)
	return p
}

// ProvideShareStore creates the share store for the configured backend.
func ProvideShareStore(cfg *config.Config) (drepo.ShareStore, error) {
	var c pkgcache.Service
	switch cfg.Share.Backend {
	case "redis":
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(cfg.Share.Redis.Addr),
			pkgcache.WithRedisPassword(cfg.Share.Redis.Password),
			pkgcache.WithRedisDB(cfg.Share.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Share.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis share store: %w", err)
		}
		c = rc
	default:
		// live links are never evicted; Create fails once the cap is reached
		c = pkgcache.NewMemoryCache(
			pkgcache.WithMemoryMaxSize(cfg.Share.MaxSize),
			pkgcache.WithMemoryNoEvict(),
		)
	}
	return internalrepo.NewCacheShareStore(c, time.Now), nil
}

// ProvideEventPublisher creates the Kafka event publisher, or a no-op one when events are off.
func ProvideEventPublisher(cfg *config.Config) (drepo.EventPublisher, error) {
	if !cfg.Events.Enabled {
		return internalrepo.NoopEventPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithClientID("lipe-core-"+cfg.Environment),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic), nil
}

func ProvideSignalScorer() domsvc.SignalScorer { return analytics.NewWindowScorer() }

func ProvidePathProjector() domsvc.PathProjector { return analytics.NewGaussianWalk() }

// ProvideBacktester creates the rule backtester with the configured drawdown source.
func ProvideBacktester(cfg *config.Config) (domsvc.Backtester, error) {
	mode, err := analytics.ParseDrawdownSignal(cfg.Strategy.DrawdownSignal)
	if err != nil {
		return nil, fmt.Errorf("backtester: %w", err)
	}
	return analytics.NewRuleBacktester(analytics.WithDrawdownSignal(mode)), nil
}

func ProvideForecastUseCase(
	history drepo.HistoryProvider,
	scorer domsvc.SignalScorer,
	projector domsvc.PathProjector,
	events drepo.EventPublisher,
	m drepo.Metrics,
	l *applogger.Logger,
) *usecase.ForecastUseCase {
	u := usecase.NewForecastUseCase(history, scorer, projector, events, m)
	u.SetLogger(l)
	return u
}

func ProvideStrategyUseCase(
	history drepo.HistoryProvider,
	scorer domsvc.SignalScorer,
	backtester domsvc.Backtester,
	events drepo.EventPublisher,
	m drepo.Metrics,
	l *applogger.Logger,
) *usecase.StrategyUseCase {
	u := usecase.NewStrategyUseCase(history, scorer, backtester, events, m)
	u.SetLogger(l)
	return u
}

// ProvideShareRegistry creates the single share registry instance.
func ProvideShareRegistry(
	cfg *config.Config,
	store drepo.ShareStore,
	events drepo.EventPublisher,
	m drepo.Metrics,
	l *applogger.Logger,
) *usecase.ShareRegistry {
	r := usecase.NewShareRegistry(store, events, m, usecase.WithPublicBaseURL(cfg.Server.PublicBaseURL))
	r.SetLogger(l)
	return r
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

func ProvideHandler(
	l *applogger.Logger,
	forecast *usecase.ForecastUseCase,
	strategy *usecase.StrategyUseCase,
	shares *usecase.ShareRegistry,
	limiter *ratelimit.Limiter,
) xhttp.Handler {
	return api.NewLipeHandler(l, forecast, strategy, shares, limiter)
}

// ProvideHTTPServer creates the echo server with CORS, logging and metrics.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, h xhttp.Handler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithAllowOrigins(cfg.Server.AllowedOrigins),
		xhttp.WithTrustedProxies(cfg.Server.TrustedProxies),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	events drepo.EventPublisher,
	store drepo.ShareStore,
) *server.App {
	return server.New(cfg, l, srv, events, store)
}
