package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookbinderapp/bookbinder/internal/config"
	"github.com/bookbinderapp/bookbinder/internal/logger"
	"github.com/bookbinderapp/bookbinder/internal/scanner/audio"
	"github.com/bookbinderapp/bookbinder/internal/store"
)

// ProvideProber provides the duration prober selected by configuration.
func ProvideProber(i do.Injector) (audio.Prober, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Probe.Kind == config.ProbeKindNative {
		log.Debug("using native duration prober")
		return audio.NewNativeProber(), nil
	}

	log.Debug("using external duration prober", "binary", cfg.Probe.Binary)
	return audio.NewFFmpegProber(cfg.Probe.Binary), nil
}

// ProvideStore provides the duration store.
func ProvideStore(i do.Injector) (*store.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	prober := do.MustInvoke[audio.Prober](i)

	st, err := store.Open(cfg.Probe.CachePath, prober, log)
	if err != nil {
		return nil, err
	}

	log.Info("duration cache ready", "path", cfg.Probe.CachePath, "entries", st.Len())
	return st, nil
}
