// Package quran holds the verse data model and the providers that load it:
// a remote JSON API client and a SQLite-backed chapter cache.
package quran

import "fmt"

// Field identifies one of the four text fields carried by a verse.
type Field int

const (
	FieldArabic Field = iota
	FieldTransliteration
	FieldTranslation
	FieldCommentary
)

func (f Field) String() string {
	switch f {
	case FieldArabic:
		return "arabic"
	case FieldTransliteration:
		return "transliteration"
	case FieldTranslation:
		return "translation"
	case FieldCommentary:
		return "commentary"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Verse is the smallest addressable unit of the text. Position is 1-based and
// unique within its chapter. Verses are immutable once loaded.
type Verse struct {
	Position        int    `json:"position"`
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
	Commentary      string `json:"commentary"`
}

// Field returns the text of the given field.
func (v *Verse) Field(f Field) string {
	switch f {
	case FieldArabic:
		return v.Arabic
	case FieldTransliteration:
		return v.Transliteration
	case FieldTranslation:
		return v.Translation
	case FieldCommentary:
		return v.Commentary
	default:
		return ""
	}
}

// ChapterName carries the display names of a chapter.
type ChapterName struct {
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
}

// Chapter is one chapter's ordered verse collection.
type Chapter struct {
	Number int         `json:"number"`
	Name   ChapterName `json:"name"`
	Verses []Verse     `json:"verses"`
}

// Validate checks the collection invariant: positions are unique and densely
// numbered 1..N in order.
func (c *Chapter) Validate() error {
	if c.Number < 1 || c.Number > ChapterCount {
		return fmt.Errorf("%w: %d", ErrNoChapter, c.Number)
	}
	if len(c.Verses) == 0 {
		return fmt.Errorf("chapter %d: no verses", c.Number)
	}
	for i := range c.Verses {
		if got, want := c.Verses[i].Position, i+1; got != want {
			return fmt.Errorf("chapter %d: verse at index %d has position %d, want %d", c.Number, i, got, want)
		}
	}
	return nil
}

// Verse returns the verse at the given 1-based position, or nil.
func (c *Chapter) Verse(position int) *Verse {
	if position < 1 || position > len(c.Verses) {
		return nil
	}
	return &c.Verses[position-1]
}

// ChapterInfo is the index entry for one chapter.
type ChapterInfo struct {
	Number     int         `json:"number"`
	Name       ChapterName `json:"name"`
	VerseCount int         `json:"verse_count"`
}
