package scanner

import (
	"github.com/bookbinderapp/bookbinder/internal/domain"
	"github.com/bookbinderapp/bookbinder/internal/track"
)

// Grouper assembles parsed track records into the chapter tree.
type Grouper struct{}

// NewGrouper creates a new grouper.
func NewGrouper() *Grouper {
	return &Grouper{}
}

// Group folds records into chapters, sections, and sub-sections. Each
// level keeps the order in which its numbers first appear, so callers
// pass records already sorted by path. Records are never reordered or
// dropped here.
func (g *Grouper) Group(records []track.Record) []domain.Chapter {
	var chapters []domain.Chapter

	for _, r := range records {
		var c, s, b int
		chapters, c = ensureChapter(chapters, r.ChapterNumber)

		ch := &chapters[c]
		ch.Sections, s = ensureSection(ch.Sections, r.SectionNumber)

		sec := &ch.Sections[s]
		sec.SubSections, b = ensureSubSection(sec.SubSections, r.SubSectionNumber)

		sub := &sec.SubSections[b]
		sub.Tracks = append(sub.Tracks, domain.Track{
			Number:          r.TrackNumber,
			Name:            r.Name,
			DurationSeconds: r.DurationSeconds,
		})
	}

	return chapters
}

func ensureChapter(chapters []domain.Chapter, number int) ([]domain.Chapter, int) {
	for i := range chapters {
		if chapters[i].Number == number {
			return chapters, i
		}
	}
	return append(chapters, domain.Chapter{Number: number}), len(chapters)
}

func ensureSection(sections []domain.Section, number int) ([]domain.Section, int) {
	for i := range sections {
		if sections[i].Number == number {
			return sections, i
		}
	}
	return append(sections, domain.Section{Number: number}), len(sections)
}

func ensureSubSection(subs []domain.SubSection, number int) ([]domain.SubSection, int) {
	for i := range subs {
		if subs[i].Number == number {
			return subs, i
		}
	}
	return append(subs, domain.SubSection{Number: number}), len(subs)
}
