package audio

import (
	"context"
	"math"

	"github.com/simonhull/audiometa"

	"github.com/bookbinderapp/bookbinder/internal/errors"
)

// NativeProber reads durations in-process with the audiometa library, so
// no external tool is needed. Rounding matches FFmpegProber: fractional
// seconds round up.
type NativeProber struct{}

// NewNativeProber creates a pure-Go prober.
func NewNativeProber() *NativeProber {
	return &NativeProber{}
}

// Probe parses the file's container headers and returns its duration in
// whole seconds.
func (p *NativeProber) Probe(ctx context.Context, path string) (int64, error) {
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return 0, errors.Wrapf(err, errors.CodeProbe, "reading %s", path)
	}
	defer file.Close()

	return int64(math.Ceil(file.Audio.Duration.Seconds())), nil
}
