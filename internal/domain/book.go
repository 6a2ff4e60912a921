// Package domain contains the core entities of a bound book.
//
// A book is a strict four-level tree: Book → Chapter → Section →
// SubSection → Track. Ownership never crosses levels and the tree is
// immutable once built. Durations are authoritative only at the leaves;
// every level above recomputes its total from its children so the sums
// can never drift apart.
package domain

// Book is the top-level collection of chapters built from one source
// directory.
type Book struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter groups sections under one chapter number.
type Chapter struct {
	Number   int       `json:"number"`
	Sections []Section `json:"sections"`
}

// Section groups sub-sections under one section number.
type Section struct {
	Number      int          `json:"number"`
	SubSections []SubSection `json:"sub_sections"`
}

// SubSection groups the tracks that belong together within a section.
type SubSection struct {
	Number int     `json:"number"`
	Tracks []Track `json:"tracks"`
}

// Track is a leaf: one audio file with its probed duration.
type Track struct {
	Number          int    `json:"number"`
	Name            string `json:"name"`
	DurationSeconds int64  `json:"duration_seconds"`
}

// Duration returns the book's total playback time in seconds.
func (b Book) Duration() int64 {
	var total int64
	for _, c := range b.Chapters {
		total += c.Duration()
	}
	return total
}

// TrackCount returns the number of tracks across all chapters.
func (b Book) TrackCount() int {
	count := 0
	for _, c := range b.Chapters {
		for _, s := range c.Sections {
			for _, ss := range s.SubSections {
				count += len(ss.Tracks)
			}
		}
	}
	return count
}

// Duration returns the chapter's total playback time in seconds.
func (c Chapter) Duration() int64 {
	var total int64
	for _, s := range c.Sections {
		total += s.Duration()
	}
	return total
}

// Duration returns the section's total playback time in seconds.
func (s Section) Duration() int64 {
	var total int64
	for _, ss := range s.SubSections {
		total += ss.Duration()
	}
	return total
}

// Duration returns the sub-section's total playback time in seconds.
func (s SubSection) Duration() int64 {
	var total int64
	for _, t := range s.Tracks {
		total += t.DurationSeconds
	}
	return total
}

// Duration returns the track's playback time in seconds.
func (t Track) Duration() int64 {
	return t.DurationSeconds
}
