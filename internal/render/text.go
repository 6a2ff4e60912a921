package render

import (
	"fmt"
	"strings"

	"github.com/bookbinderapp/bookbinder/internal/domain"
)

// TrackText renders one track line. A track alone in its sub-section
// shows only its own duration; with siblings it also shows the
// sub-section total for comparison.
func TrackText(t domain.Track, parent domain.SubSection) string {
	if len(parent.Tracks) == 1 {
		return fmt.Sprintf("  * %s  (%s)", t.Name, HMS(t.DurationSeconds))
	}
	return fmt.Sprintf("  * %s  (%s / %s)", t.Name, HMS(t.DurationSeconds), HMS(parent.Duration()))
}

// SubSectionText renders a sub-section's tracks joined by single
// newlines. Sub-sections carry no header of their own.
func SubSectionText(s domain.SubSection) string {
	lines := make([]string, 0, len(s.Tracks))
	for _, t := range s.Tracks {
		lines = append(lines, TrackText(t, s))
	}
	return strings.Join(lines, "\n")
}

// SectionText renders the section header line followed by its
// sub-sections separated by blank lines. The header shows the section's
// duration against its chapter's total.
func SectionText(s domain.Section, parent domain.Chapter) string {
	header := fmt.Sprintf("%d-%d (%s / %s)", parent.Number, s.Number, HMS(s.Duration()), HMS(parent.Duration()))

	blocks := make([]string, 0, len(s.SubSections))
	for _, ss := range s.SubSections {
		blocks = append(blocks, SubSectionText(ss))
	}
	return header + "\n" + strings.Join(blocks, "\n\n")
}

// ChapterText renders a chapter's sections separated by blank lines.
// Chapters have no header line; the chapter number appears in every
// section header instead.
func ChapterText(c domain.Chapter) string {
	blocks := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		blocks = append(blocks, SectionText(s, c))
	}
	return strings.Join(blocks, "\n\n")
}

// BookText renders the whole book as plain text. An empty book renders
// as an empty document.
func BookText(b domain.Book) string {
	blocks := make([]string, 0, len(b.Chapters))
	for _, c := range b.Chapters {
		blocks = append(blocks, ChapterText(c))
	}
	return strings.Join(blocks, "\n\n")
}
