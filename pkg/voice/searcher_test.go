package voice

import (
	"context"
	"testing"
	"time"

	"github.com/hazyhaar/tanzil-search/pkg/quran"
	"github.com/hazyhaar/tanzil-search/pkg/search"
)

func testResolver(t *testing.T) *search.Resolver {
	t.Helper()
	ch := &quran.Chapter{
		Number: 67,
		Name:   quran.ChapterName{Transliteration: "Al-Mulk"},
		Verses: []quran.Verse{
			{Position: 1, Transliteration: "tabarakalladhi biyadihil-mulk", Translation: "Maha Suci Allah yang menguasai segala kerajaan"},
			{Position: 2, Transliteration: "alladhi khalaqal-mauta wal-hayata", Translation: "yang menjadikan mati dan hidup pada hari kebangkitan"},
		},
	}
	return search.NewResolver(ch, nil)
}

func TestNewSearcherRequiresCapability(t *testing.T) {
	if _, err := NewSearcher(nil, testResolver(t), nil); err != ErrNoCapability {
		t.Fatalf("err = %v, want ErrNoCapability", err)
	}
}

func TestVoiceSearchResolvesTranscript(t *testing.T) {
	fake := &fakeCapability{
		errs:        map[string]error{"ar-SA": noSpeech("ar-SA")},
		transcripts: map[string]string{"id-ID": "hari kebangkitan"},
	}
	searcher, err := NewSearcher(fake, testResolver(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	outC := make(chan SearchResult, 1)
	searcher.Start(context.Background(), SearchOptions{}, nil, func(r SearchResult) { outC <- r })

	var got SearchResult
	select {
	case got = <-outC:
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome delivered")
	}

	if got.Capture.Kind != ResultTranscribed {
		t.Fatalf("capture kind = %v, want transcribed", got.Capture.Kind)
	}
	if got.Match == nil || !got.Match.Found {
		t.Fatalf("match = %+v, want a found outcome", got.Match)
	}
	if got.Match.Verse.Position != 2 {
		t.Errorf("resolved position = %d, want 2", got.Match.Verse.Position)
	}
	if searcher.Active() {
		t.Error("session still active after outcome")
	}
}

func TestFailedCaptureSkipsResolution(t *testing.T) {
	fake := &fakeCapability{
		errs: map[string]error{
			"ar-SA": noSpeech("ar-SA"),
			"id-ID": noSpeech("id-ID"),
			"en-US": noSpeech("en-US"),
		},
	}
	searcher, err := NewSearcher(fake, testResolver(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	outC := make(chan SearchResult, 1)
	searcher.Start(context.Background(), SearchOptions{}, nil, func(r SearchResult) { outC <- r })

	got := <-outC
	if got.Capture.Kind != ResultNoSpeech {
		t.Fatalf("capture kind = %v, want no_speech_recognized", got.Capture.Kind)
	}
	if got.Match != nil {
		t.Errorf("match = %+v, want nil when nothing was transcribed", got.Match)
	}
}

func TestStartSupersedesPreviousSession(t *testing.T) {
	started := make(chan struct{}, 2)
	fake := &fakeCapability{
		blockLang:   "ar-SA",
		teardown:    50 * time.Millisecond,
		transcripts: map[string]string{"id-ID": "hari kebangkitan"},
	}
	fake.onCall = func(lang string) {
		if lang == "ar-SA" {
			started <- struct{}{}
		}
	}
	searcher, err := NewSearcher(fake, testResolver(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	firstC := make(chan SearchResult, 1)
	searcher.Start(context.Background(), SearchOptions{}, nil, func(r SearchResult) { firstC <- r })

	// Wait until the first session holds the capability, then supersede it.
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first session never started listening")
	}

	secondC := make(chan SearchResult, 1)
	searcher.Start(context.Background(), SearchOptions{}, nil, func(r SearchResult) { secondC <- r })

	first := <-firstC
	if first.Capture.Kind != ResultCancelled {
		t.Errorf("first capture kind = %v, want cancelled", first.Capture.Kind)
	}

	// The block is one-shot, so the superseding session runs the full
	// cascade and resolves normally.
	second := <-secondC
	if second.Capture.Kind != ResultTranscribed {
		t.Errorf("second capture kind = %v, want transcribed", second.Capture.Kind)
	}

	// The superseding cascade must not touch the microphone while the
	// cancelled session is still releasing it.
	if fake.maxActive != 1 {
		t.Errorf("max concurrent capability acquisitions = %d, want 1", fake.maxActive)
	}
}
