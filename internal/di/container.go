// Package di provides dependency injection configuration for bookbinder.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookbinderapp/bookbinder/internal/binder"
	"github.com/bookbinderapp/bookbinder/internal/config"
	"github.com/bookbinderapp/bookbinder/internal/di/providers"
	"github.com/bookbinderapp/bookbinder/internal/logger"
	"github.com/bookbinderapp/bookbinder/internal/render"
	"github.com/bookbinderapp/bookbinder/internal/scanner"
	"github.com/bookbinderapp/bookbinder/internal/scanner/audio"
	"github.com/bookbinderapp/bookbinder/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Probing and persistence
	do.Provide(injector, providers.ProvideProber)
	do.Provide(injector, providers.ProvideStore)

	// Build pipeline
	do.Provide(injector, providers.ProvideScanner)
	do.Provide(injector, providers.ProvideRenderer)
	do.Provide(injector, providers.ProvideBinder)

	return injector
}

// Bootstrap initializes every service in dependency order so a bad
// configuration or a corrupt duration cache surfaces here, with a
// proper error, before any build starts.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[audio.Prober](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*store.Store](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*scanner.Scanner](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*render.Renderer](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*binder.Binder](injector); err != nil {
		return err
	}
	return nil
}
