// Package audio extracts playback durations from audio files.
package audio

import (
	"context"
	"math"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/bookbinderapp/bookbinder/internal/errors"
)

// durationMarker matches the duration banner the media tool prints on its
// diagnostic output, e.g. "Duration: 00:01:05.52". Hours may grow beyond
// two digits for very long files; the fraction is optional.
var durationMarker = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// FFmpegProber shells out to ffmpeg (or a compatible tool) and reads the
// duration from its diagnostic output.
type FFmpegProber struct {
	binary string
}

// NewFFmpegProber creates a prober invoking the given binary. An empty
// binary means "ffmpeg" on PATH.
func NewFFmpegProber(binary string) *FFmpegProber {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpegProber{binary: binary}
}

// Probe runs the media tool against path and extracts the duration from
// its combined output. The tool is invoked with no output file, which
// makes ffmpeg exit non-zero while still printing the duration banner,
// so the exit status alone does not decide failure.
func (p *FFmpegProber) Probe(ctx context.Context, path string) (int64, error) {
	cmd := exec.CommandContext(ctx, p.binary, "-i", path) //#nosec G204 -- Binary and path come from config and the scanned library
	output, runErr := cmd.CombinedOutput()
	if len(output) == 0 && runErr != nil {
		return 0, errors.Wrapf(runErr, errors.CodeProbe, "invoking %s on %s", p.binary, path)
	}

	seconds, ok := parseDuration(output)
	if !ok {
		return 0, errors.Probef("no duration marker in %s output for %s", p.binary, path).
			WithDetails(string(output))
	}
	return seconds, nil
}

// parseDuration finds the first duration marker in the probe output and
// converts it to whole seconds, rounding any fractional second up.
func parseDuration(output []byte) (int64, bool) {
	m := durationMarker.FindSubmatch(output)
	if m == nil {
		return 0, false
	}

	// The pattern guarantees numeric captures.
	hours, _ := strconv.ParseInt(string(m[1]), 10, 64)
	minutes, _ := strconv.ParseInt(string(m[2]), 10, 64)
	seconds, _ := strconv.ParseFloat(string(m[3]), 64)

	return hours*3600 + minutes*60 + int64(math.Ceil(seconds)), true
}
