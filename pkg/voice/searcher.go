package voice

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hazyhaar/tanzil-search/pkg/search"
	"golang.org/x/text/language"
)

// ErrNoCapability marks a Searcher constructed without a host speech
// capability. Absence is a configuration fact, decided once here, never a
// runtime check sprinkled through call sites.
var ErrNoCapability = errors.New("no speech capability configured")

// SearchResult is the terminal outcome of one voice search: the capture
// result, and, when a transcript was obtained, the resolution it produced.
type SearchResult struct {
	Capture Result
	Match   *search.Outcome
}

// SearchOptions configure one voice search.
type SearchOptions struct {
	// ForceRecitation marks the session as started from the dedicated
	// "recite" control, which pre-labels the transcript's intent.
	ForceRecitation bool
	// Cascade overrides DefaultCascade when non-empty.
	Cascade []language.Tag
}

// Searcher composes the capture cascade with a chapter's resolver. At most
// one capture session is active at a time: starting a new search cancels the
// previous session before the capability is acquired again.
type Searcher struct {
	capability Capability
	resolver   *search.Resolver
	logger     *slog.Logger

	mu      sync.Mutex
	current *Session
}

// NewSearcher creates a voice searcher over the given capability and
// resolver. Returns ErrNoCapability when the host has no speech support.
func NewSearcher(capability Capability, resolver *search.Resolver, logger *slog.Logger) (*Searcher, error) {
	if capability == nil {
		return nil, ErrNoCapability
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{capability: capability, resolver: resolver, logger: logger}, nil
}

// Start begins a voice search. The previous session, if any, is cancelled
// synchronously, and the new cascade does not begin until that session's run
// has fully settled. onStatus observes state
// transitions; onOutcome receives exactly one terminal result. The returned
// function cancels this session.
func (s *Searcher) Start(ctx context.Context, opts SearchOptions, onStatus func(Status), onOutcome func(SearchResult)) func() {
	sess := NewSession(s.capability, opts.Cascade, onStatus, s.logger)

	s.mu.Lock()
	prev := s.current
	s.current = sess
	s.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}

	go func() {
		if prev != nil {
			// The capability handle admits one holder. Let the superseded
			// run settle before this one touches the microphone.
			<-prev.done
		}

		capture := sess.Run(ctx)

		out := SearchResult{Capture: capture}
		if capture.Kind == ResultTranscribed {
			match := s.resolver.Resolve(capture.Transcript, opts.ForceRecitation)
			out.Match = &match
		}

		s.mu.Lock()
		if s.current == sess {
			s.current = nil
		}
		s.mu.Unlock()

		if onOutcome != nil {
			onOutcome(out)
		}
	}()

	return sess.Cancel
}

// Active reports whether a capture session is in flight.
func (s *Searcher) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}
