package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/bookbinderapp/bookbinder/internal/domain"
)

// TrackHTML renders one track as a list item, with the same
// single/multi-track duration branching as the plain text form.
func TrackHTML(t domain.Track, parent domain.SubSection) string {
	name := template.HTMLEscapeString(t.Name)
	if len(parent.Tracks) == 1 {
		return fmt.Sprintf("<li>%s  (%s)</li>", name, HMS(t.DurationSeconds))
	}
	return fmt.Sprintf("<li>%s  (%s / %s)</li>", name, HMS(t.DurationSeconds), HMS(parent.Duration()))
}

// SubSectionHTML renders a sub-section's tracks as an unordered list.
func SubSectionHTML(s domain.SubSection) string {
	var sb strings.Builder
	sb.WriteString("<ul>\n")
	for _, t := range s.Tracks {
		sb.WriteString(TrackHTML(t, s))
		sb.WriteString("\n")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// SectionHTML renders the section header as a heading followed by its
// sub-section lists.
func SectionHTML(s domain.Section, parent domain.Chapter) string {
	header := fmt.Sprintf("<h2>%d-%d (%s / %s)</h2>", parent.Number, s.Number, HMS(s.Duration()), HMS(parent.Duration()))

	blocks := make([]string, 0, len(s.SubSections)+1)
	blocks = append(blocks, header)
	for _, ss := range s.SubSections {
		blocks = append(blocks, SubSectionHTML(ss))
	}
	return strings.Join(blocks, "\n")
}

// ChapterHTML renders a chapter's sections.
func ChapterHTML(c domain.Chapter) string {
	blocks := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		blocks = append(blocks, SectionHTML(s, c))
	}
	return strings.Join(blocks, "\n")
}

// BookHTML renders the whole book's markup fragment, ready to drop into
// the page template's body.
func BookHTML(b domain.Book) string {
	blocks := make([]string, 0, len(b.Chapters))
	for _, c := range b.Chapters {
		blocks = append(blocks, ChapterHTML(c))
	}
	return strings.Join(blocks, "\n")
}
