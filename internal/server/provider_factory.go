package server

import (
	"log/slog"
	"time"

	"github.com/andover-chess-club/fixtures-service/internal/config"
	"github.com/andover-chess-club/fixtures-service/internal/metrics"
	"github.com/andover-chess-club/fixtures-service/internal/providers"
	"github.com/andover-chess-club/fixtures-service/internal/providers/lms"
	"github.com/andover-chess-club/fixtures-service/internal/providers/static"
)

// providerFactory assembles the upstream data provider with the retry wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := f.selectProvider(cfg)
	return providers.NewRetryingProvider(base, f.logger, cfg.LMS.RetryAttempts)
}

func (f providerFactory) selectProvider(cfg config.Config) providers.DataProvider {
	switch cfg.Provider {
	case "static":
		return static.New()
	default:
		return lms.NewClient(lms.Config{
			BaseURL:  cfg.LMS.BaseURL,
			ClubName: cfg.ClubName,
			Timeout:  time.Duration(cfg.LMS.FetchTimeout),
			Logger:   f.logger,
			Metrics:  f.metrics,
		})
	}
}
