// Package providers contains dependency injection providers for bookbinder.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookbinderapp/bookbinder/internal/config"
	"github.com/bookbinderapp/bookbinder/internal/id"
	"github.com/bookbinderapp/bookbinder/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger. Every line of a run
// carries the same run id so interleaved watch rebuilds stay readable.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:     logger.ParseLevel(cfg.Logger.Level),
		Format:    cfg.Logger.Format,
		AddSource: cfg.Logger.Level == "debug",
	})
	log = log.WithField("run_id", id.Run())

	log.Info("starting bookbinder",
		"library", cfg.Library.Path,
		"output", cfg.Output.Path,
		"prober", cfg.Probe.Kind,
		"log_level", cfg.Logger.Level,
	)

	return log, nil
}
