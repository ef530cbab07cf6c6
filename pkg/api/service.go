// Package api exposes verse resolution over HTTP and MCP. Both transports
// dispatch to the same kit.Endpoints, backed by a chapter-session service.
package api

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/hazyhaar/tanzil-search/pkg/quran"
	"github.com/hazyhaar/tanzil-search/pkg/search"
)

// Service owns the open chapter sessions. A chapter is loaded through the
// provider once, on first use, and its resolver is shared read-only by every
// request until the session is evicted.
type Service struct {
	provider quran.Provider
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[int]*search.Resolver
}

// NewService creates a service over the given provider.
func NewService(provider quran.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		logger:   logger,
		sessions: make(map[int]*search.Resolver),
	}
}

// Open returns the resolver for a chapter, loading the chapter on first use.
func (s *Service) Open(ctx context.Context, number int) (*search.Resolver, error) {
	s.mu.RLock()
	r, ok := s.sessions[number]
	s.mu.RUnlock()
	if ok {
		return r, nil
	}

	ch, err := s.provider.LoadChapter(ctx, number)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have opened the chapter while we were loading.
	if r, ok := s.sessions[number]; ok {
		return r, nil
	}
	r = search.NewResolver(ch, s.logger)
	s.sessions[number] = r
	s.logger.Info("chapter session opened", "chapter", number, "verses", len(ch.Verses))
	return r, nil
}

// Index returns the chapter index from the provider.
func (s *Service) Index(ctx context.Context) ([]quran.ChapterInfo, error) {
	return s.provider.LoadChapterIndex(ctx)
}

// Evict discards one chapter session.
func (s *Service) Evict(number int) {
	s.mu.Lock()
	delete(s.sessions, number)
	s.mu.Unlock()
}

// EvictAll discards every open session (hot reload gesture).
func (s *Service) EvictAll() {
	s.mu.Lock()
	s.sessions = make(map[int]*search.Resolver)
	s.mu.Unlock()
}

// OpenChapters lists the numbers of open sessions in ascending order.
func (s *Service) OpenChapters() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nums := make([]int, 0, len(s.sessions))
	for n := range s.sessions {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
