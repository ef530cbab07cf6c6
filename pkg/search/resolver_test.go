package search

import (
	"testing"

	"github.com/hazyhaar/tanzil-search/pkg/quran"
)

func testChapter() *quran.Chapter {
	return &quran.Chapter{
		Number: 67,
		Name:   quran.ChapterName{Transliteration: "Al-Mulk"},
		Verses: []quran.Verse{
			{
				Position:        1,
				Arabic:          "تَبَارَكَ الَّذِي بِيَدِهِ الْمُلْكُ",
				Transliteration: "tabarakalladhi biyadihil-mulk",
				Translation:     "Mahasuci Allah yang menguasai segala kerajaan",
			},
			{
				Position:        2,
				Arabic:          "الَّذِي خَلَقَ الْمَوْتَ وَالْحَيَاةَ",
				Transliteration: "alladhi khalaqal-mawta wal-hayah",
				Translation:     "yang menjadikan mati dan hidup pada hari kebangkitan",
			},
			{
				Position:        3,
				Arabic:          "الَّذِي خَلَقَ سَبْعَ سَمَاوَاتٍ طِبَاقًا",
				Transliteration: "alladhi khalaqa sab'a samawatin tibaqa",
				Translation:     "yang menciptakan tujuh langit berlapis-lapis",
			},
		},
	}
}

func TestResolveFound(t *testing.T) {
	r := NewResolver(testChapter(), nil)

	got := r.Resolve("hari kebangkitan", false)
	if !got.Found {
		t.Fatalf("Resolve = %+v, want found", got)
	}
	if got.Verse.Position != 2 {
		t.Errorf("position = %d, want 2", got.Verse.Position)
	}
	if got.Script != ScriptLatin || got.Intent != IntentKeyword {
		t.Errorf("context = (%v, %v), want (latin, keyword)", got.Script, got.Intent)
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := NewResolver(testChapter(), nil)

	got := r.Resolve("zzzzqqqxxx", false)
	if got.Found {
		t.Fatalf("Resolve = %+v, want not found", got)
	}
	if got.Reason != ReasonNoMatch {
		t.Errorf("reason = %v, want no_match", got.Reason)
	}
	// Enough context for a script/intent-specific suggestion message.
	if got.Script != ScriptLatin || got.Intent != IntentKeyword {
		t.Errorf("context = (%v, %v), want (latin, keyword)", got.Script, got.Intent)
	}
}

func TestResolveEmptyQuerySkipsMatcher(t *testing.T) {
	r := NewResolver(testChapter(), nil)

	calls := 0
	r.searchFn = func(v []quran.Verse, text string, p Profile) []Candidate {
		calls++
		return Search(v, text, p)
	}

	for _, raw := range []string{"", "   ", "\t\n"} {
		got := r.Resolve(raw, false)
		if got.Found || got.Reason != ReasonEmptyQuery {
			t.Errorf("Resolve(%q) = %+v, want empty_query", raw, got)
		}
	}
	if calls != 0 {
		t.Errorf("matcher invoked %d times on blank input, want 0", calls)
	}

	// Blank input with the recite trigger still short-circuits.
	if got := r.Resolve("", true); got.Reason != ReasonEmptyQuery {
		t.Errorf("Resolve(\"\", explicit) = %+v, want empty_query", got)
	}
	if calls != 0 {
		t.Errorf("matcher invoked %d times, want 0", calls)
	}
}

// Symbols-only input is not blank: it runs the pipeline, normalizes to
// nothing, and the matcher reports no candidates.
func TestResolveSymbolsOnlyIsNoMatch(t *testing.T) {
	r := NewResolver(testChapter(), nil)

	calls := 0
	r.searchFn = func(v []quran.Verse, text string, p Profile) []Candidate {
		calls++
		return Search(v, text, p)
	}

	got := r.Resolve("!!!", false)
	if got.Found || got.Reason != ReasonNoMatch {
		t.Errorf("Resolve(%q) = %+v, want no_match", "!!!", got)
	}
	if calls != 1 {
		t.Errorf("matcher invoked %d times, want 1", calls)
	}
}

func TestResolveExplicitRecitation(t *testing.T) {
	r := NewResolver(testChapter(), nil)

	got := r.Resolve("tabarakalladhi biyadihil-mulk", true)
	if got.Intent != IntentRecitation {
		t.Errorf("intent = %v, want recitation", got.Intent)
	}
	if !got.Found || got.Verse.Position != 1 {
		t.Errorf("Resolve = %+v, want verse 1", got)
	}
}

func TestResolverLatest(t *testing.T) {
	r := NewResolver(testChapter(), nil)

	if got := r.Latest(); got.Found || got.Reason != ReasonNone {
		t.Errorf("initial Latest = %+v, want zero outcome", got)
	}

	first := r.Resolve("hari kebangkitan", false)
	if got := r.Latest(); got != first {
		t.Errorf("Latest = %+v, want %+v", got, first)
	}

	// Last resolved wins.
	second := r.Resolve("", false)
	if got := r.Latest(); got != second {
		t.Errorf("Latest = %+v, want %+v", got, second)
	}
}
