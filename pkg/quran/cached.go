package quran

import (
	"context"
	"fmt"
	"log/slog"
)

// CachedProvider serves chapters from a Store and falls through to an origin
// Provider on miss, writing fetched chapters back.
type CachedProvider struct {
	store  *Store
	origin Provider
	logger *slog.Logger
}

// NewCachedProvider composes a store over an origin provider.
func NewCachedProvider(store *Store, origin Provider, logger *slog.Logger) *CachedProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedProvider{store: store, origin: origin, logger: logger}
}

// LoadChapter returns the cached chapter when present, otherwise fetches from
// the origin and caches the result. A write-back failure is logged, not fatal:
// the fetched chapter is still served.
func (p *CachedProvider) LoadChapter(ctx context.Context, number int) (*Chapter, error) {
	ch, err := p.store.GetChapter(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if ch != nil {
		return ch, nil
	}

	ch, err = p.origin.LoadChapter(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := p.store.PutChapter(ctx, ch); err != nil {
		p.logger.Warn("chapter cache write failed", "chapter", number, "error", err)
	}
	return ch, nil
}

// LoadChapterIndex prefers the origin index (it covers all chapters) and falls
// back to whatever the cache holds when the origin is unreachable.
func (p *CachedProvider) LoadChapterIndex(ctx context.Context) ([]ChapterInfo, error) {
	infos, err := p.origin.LoadChapterIndex(ctx)
	if err == nil {
		return infos, nil
	}

	cached, cerr := p.store.ChapterIndex(ctx)
	if cerr != nil || len(cached) == 0 {
		return nil, err
	}
	p.logger.Warn("origin index unavailable, serving cached chapters", "cached", len(cached), "error", err)
	return cached, nil
}

// Evict removes a chapter from the cache so the next load re-fetches it.
func (p *CachedProvider) Evict(ctx context.Context, number int) error {
	if _, err := p.store.db.ExecContext(ctx, `DELETE FROM chapters WHERE number = ?`, number); err != nil {
		return fmt.Errorf("evict chapter %d: %w", number, err)
	}
	_, err := p.store.db.ExecContext(ctx, `DELETE FROM verses WHERE chapter = ?`, number)
	return err
}
