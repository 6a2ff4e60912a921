package audio

import "context"

// Prober resolves an audio file's playback duration.
type Prober interface {

	// Probe returns the file's duration in whole seconds, with any
	// fractional part rounded up.
	Probe(ctx context.Context, path string) (int64, error)
}
