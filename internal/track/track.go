// Package track parses the naming convention that places an audio file
// inside a book's hierarchy.
//
// A track's filename stem is exactly five characters: book, chapter,
// section, sub-section, and track number, one digit each. The chapter
// position may be the literal X, which stands for chapter ten. An optional
// trailing N is accepted and ignored. Anything else is a hard error so
// mislabeled files surface on the first build instead of landing silently
// in the wrong chapter.
package track

import (
	"regexp"

	"github.com/bookbinderapp/bookbinder/internal/errors"
)

// IgnoreChapter is the chapter number reserved for front matter and other
// material that must not appear in a bound book.
const IgnoreChapter = 0

// chapterTen is the stand-in for chapter ten in the single-character
// chapter position.
const chapterTen = "X"

var namePattern = regexp.MustCompile(`^([0-9])([0-9X])([0-9])([0-9])([0-9])N?$`)

// Record is one audio file annotated with its parsed position numbers and,
// once resolved, its probed duration.
type Record struct {
	// Path is the file's full path, also the duration cache key.
	Path string `json:"path"`
	// Name is the NFC-normalized filename stem shown verbatim in listings.
	Name string `json:"name"`

	BookNumber       int `json:"book_number"`
	ChapterNumber    int `json:"chapter_number"`
	SectionNumber    int `json:"section_number"`
	SubSectionNumber int `json:"sub_section_number"`
	TrackNumber      int `json:"track_number"`

	// DurationSeconds is filled in by the duration store, ceiling-rounded
	// to whole seconds.
	DurationSeconds int64 `json:"duration_seconds"`
}

// Parse decodes the position numbers from a filename stem. The stem must
// already be stripped of its directory and extension.
func Parse(stem string) (Record, error) {
	m := namePattern.FindStringSubmatch(stem)
	if m == nil {
		return Record{}, errors.Formatf("track name %q does not follow the five-digit naming convention", stem)
	}

	rec := Record{
		Name:             stem,
		BookNumber:       digit(m[1]),
		SectionNumber:    digit(m[3]),
		SubSectionNumber: digit(m[4]),
		TrackNumber:      digit(m[5]),
	}
	if m[2] == chapterTen {
		rec.ChapterNumber = 10
	} else {
		rec.ChapterNumber = digit(m[2])
	}
	return rec, nil
}

// digit converts a captured group the pattern guarantees to be a single
// ASCII digit.
func digit(s string) int {
	return int(s[0] - '0')
}
