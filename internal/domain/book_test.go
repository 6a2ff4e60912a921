package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleBook() Book {
	return Book{
		Name: "winter-journal",
		Chapters: []Chapter{
			{
				Number: 1,
				Sections: []Section{
					{
						Number: 1,
						SubSections: []SubSection{
							{
								Number: 1,
								Tracks: []Track{
									{Number: 1, Name: "11111", DurationSeconds: 10},
									{Number: 2, Name: "11112", DurationSeconds: 20},
								},
							},
							{
								Number: 2,
								Tracks: []Track{
									{Number: 1, Name: "11121", DurationSeconds: 5},
								},
							},
						},
					},
				},
			},
			{
				Number: 2,
				Sections: []Section{
					{
						Number: 1,
						SubSections: []SubSection{
							{
								Number: 1,
								Tracks: []Track{
									{Number: 1, Name: "12111", DurationSeconds: 65},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestDuration_SumsAtEveryLevel(t *testing.T) {
	book := sampleBook()

	assert.Equal(t, int64(100), book.Duration())
	assert.Equal(t, int64(35), book.Chapters[0].Duration())
	assert.Equal(t, int64(35), book.Chapters[0].Sections[0].Duration())
	assert.Equal(t, int64(30), book.Chapters[0].Sections[0].SubSections[0].Duration())
	assert.Equal(t, int64(5), book.Chapters[0].Sections[0].SubSections[1].Duration())
	assert.Equal(t, int64(65), book.Chapters[1].Duration())
}

func TestDuration_EmptyBookIsZero(t *testing.T) {
	book := Book{Name: "empty"}

	assert.Equal(t, int64(0), book.Duration())
	assert.Equal(t, 0, book.TrackCount())
}

func TestTrackCount(t *testing.T) {
	book := sampleBook()

	assert.Equal(t, 4, book.TrackCount())
}
