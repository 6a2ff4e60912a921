package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookbinderapp/bookbinder/internal/binder"
	"github.com/bookbinderapp/bookbinder/internal/config"
	"github.com/bookbinderapp/bookbinder/internal/logger"
	"github.com/bookbinderapp/bookbinder/internal/render"
	"github.com/bookbinderapp/bookbinder/internal/scanner"
	"github.com/bookbinderapp/bookbinder/internal/store"
)

// ProvideScanner provides the book scanner.
func ProvideScanner(i do.Injector) (*scanner.Scanner, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return scanner.NewScanner(st, log), nil
}

// ProvideRenderer provides the HTML page renderer.
func ProvideRenderer(i do.Injector) (*render.Renderer, error) {
	return render.New()
}

// ProvideBinder provides the build orchestrator.
func ProvideBinder(i do.Injector) (*binder.Binder, error) {
	cfg := do.MustInvoke[*config.Config](i)
	sc := do.MustInvoke[*scanner.Scanner](i)
	r := do.MustInvoke[*render.Renderer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return binder.New(cfg, sc, r, log), nil
}
