package search

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/hazyhaar/tanzil-search/pkg/quran"
)

// Reason says why a resolution produced no verse.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonEmptyQuery: blank input, matching never ran.
	ReasonEmptyQuery
	// ReasonNoMatch: matching ran but no candidate cleared the threshold.
	ReasonNoMatch
)

func (r Reason) String() string {
	switch r {
	case ReasonEmptyQuery:
		return "empty_query"
	case ReasonNoMatch:
		return "no_match"
	default:
		return "none"
	}
}

// Outcome is the tagged result of one resolution: either a found verse with
// its score, or a not-found reason. Script and Intent carry enough context
// for the caller to render a specific suggestion message.
type Outcome struct {
	Found  bool         `json:"found"`
	Verse  *quran.Verse `json:"verse,omitempty"`
	Score  float64      `json:"score,omitempty"`
	Reason Reason       `json:"-"`
	Script Script       `json:"-"`
	Intent Intent       `json:"-"`
}

// Resolver composes the pipeline for one chapter session: normalize, classify
// intent, select a profile, run the fuzzy match. It holds a read-only
// reference to the chapter's verses for the lifetime of the session, so
// concurrent resolutions are safe. The last resolved outcome is tracked
// behind a mutex, last-resolved-wins, as the single source of truth for the
// caller's "current match".
type Resolver struct {
	chapter *quran.Chapter
	logger  *slog.Logger

	// searchFn is the matcher entry point; a test seam, Search in production.
	searchFn func([]quran.Verse, string, Profile) []Candidate

	mu   sync.Mutex
	last Outcome
}

// NewResolver creates a resolver over one chapter.
func NewResolver(chapter *quran.Chapter, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{chapter: chapter, logger: logger, searchFn: Search}
}

// Chapter returns the chapter this resolver searches.
func (r *Resolver) Chapter() *quran.Chapter {
	return r.chapter
}

// Resolve runs the full pipeline on raw input. explicit marks input from the
// dedicated "recite" control, which forces recitation intent. Blank input
// short-circuits to ReasonEmptyQuery before any heuristic runs. Input that
// only normalizes to empty (symbols, say) is not blank: it goes through the
// pipeline and comes back as ReasonNoMatch with intent context. Never panics;
// every failure mode is a tagged outcome.
func (r *Resolver) Resolve(raw string, explicit bool) Outcome {
	if strings.TrimSpace(raw) == "" {
		return r.record(Outcome{Reason: ReasonEmptyQuery})
	}

	q := Normalize(raw)
	intent := ClassifyIntent(raw, explicit)
	profile := SelectProfile(q.Script, intent)

	candidates := r.searchFn(r.chapter.Verses, q.Text, profile)
	if len(candidates) == 0 {
		r.logger.Debug("no match",
			"chapter", r.chapter.Number, "script", q.Script.String(), "intent", intent.String())
		return r.record(Outcome{Reason: ReasonNoMatch, Script: q.Script, Intent: intent})
	}

	best := candidates[0]
	r.logger.Debug("verse resolved",
		"chapter", r.chapter.Number, "position", best.Verse.Position,
		"score", best.Score, "script", q.Script.String(), "intent", intent.String())
	return r.record(Outcome{
		Found:  true,
		Verse:  best.Verse,
		Score:  best.Score,
		Script: q.Script,
		Intent: intent,
	})
}

// Latest returns the most recently resolved outcome.
func (r *Resolver) Latest() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Resolver) record(o Outcome) Outcome {
	r.mu.Lock()
	r.last = o
	r.mu.Unlock()
	return o
}
