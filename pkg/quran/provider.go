package quran

import (
	"context"
	"errors"
)

// ChapterCount is the number of chapters in the text.
const ChapterCount = 114

var (
	// ErrDataUnavailable wraps transport or storage faults so callers can
	// branch without inspecting causes.
	ErrDataUnavailable = errors.New("verse data unavailable")

	// ErrNoChapter marks an out-of-range chapter number.
	ErrNoChapter = errors.New("no such chapter")
)

// Provider supplies chapters and the chapter index. Implementations must
// return chapters that pass Validate.
type Provider interface {
	LoadChapter(ctx context.Context, number int) (*Chapter, error)
	LoadChapterIndex(ctx context.Context) ([]ChapterInfo, error)
}
