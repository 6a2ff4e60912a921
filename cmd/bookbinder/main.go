// Package main provides the entry point for the bookbinder build tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/bookbinderapp/bookbinder/internal/binder"
	"github.com/bookbinderapp/bookbinder/internal/config"
	"github.com/bookbinderapp/bookbinder/internal/di"
	"github.com/bookbinderapp/bookbinder/internal/errors"
	"github.com/bookbinderapp/bookbinder/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start bookbinder: %v\n", err)
		return errors.ExitCode(err)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	b := do.MustInvoke[*binder.Binder](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Build.Watch {
		if err := b.Watch(ctx); err != nil {
			logBuildFailure(log, "watch ended with a failed build", err)
			return errors.ExitCode(err)
		}
		log.Info("closing the library...")
		return 0
	}

	result, err := b.Run(ctx)
	if err != nil {
		logBuildFailure(log, "build failed", err)
		return errors.ExitCode(err)
	}

	fmt.Println(summaryTable(result))
	log.Info("all books bound", "books", len(result.Books), "index", result.IndexPath)
	return 0
}

// logBuildFailure unwraps a domain error so its code and details land in
// the log. The details carry the diagnosis: the offending path for a
// naming failure, the raw tool output for a probe failure.
func logBuildFailure(log *logger.Logger, msg string, err error) {
	args := []any{"error", err.Error()}

	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		args = append(args, "code", string(domainErr.Code))
		if domainErr.Details != nil {
			args = append(args, "details", domainErr.Details)
		}
	}

	log.Error(msg, args...)
}
