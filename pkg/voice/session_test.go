package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/text/language"
)

// fakeCapability returns scripted per-language results and records the call
// order. It also tracks concurrent acquisitions: more than one at a time is
// a duplicate microphone grab.
type fakeCapability struct {
	mu            sync.Mutex
	permissionErr error
	transcripts   map[string]string
	errs          map[string]error
	calls         []string
	active        int
	maxActive     int
	onCall        func(lang string)
	blockLang     string
	teardown      time.Duration // simulated handle-release time after cancellation
}

func (f *fakeCapability) CheckPermission(context.Context) error {
	return f.permissionErr
}

func (f *fakeCapability) TranscribeOnce(ctx context.Context, lang language.Tag) (string, error) {
	tag := lang.String()

	f.mu.Lock()
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	f.calls = append(f.calls, tag)
	onCall := f.onCall
	block := f.blockLang == tag
	if block {
		// One-shot: only the first matching attempt blocks.
		f.blockLang = ""
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if onCall != nil {
		onCall(tag)
	}
	if block {
		<-ctx.Done()
		// A real capture backend does not release the microphone the
		// instant its context dies.
		time.Sleep(f.teardown)
		return "", ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[tag]; ok {
		return "", err
	}
	return f.transcripts[tag], nil
}

func (f *fakeCapability) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func noSpeech(tag string) error {
	return &RecognitionError{Kind: KindNoSpeech, Lang: language.MustParse(tag)}
}

func TestCascadeFirstTranscriptWins(t *testing.T) {
	fake := &fakeCapability{
		errs:        map[string]error{"ar-SA": noSpeech("ar-SA")},
		transcripts: map[string]string{"id-ID": "neraka", "en-US": "hell"},
	}
	sess := NewSession(fake, nil, nil, nil)

	got := sess.Run(context.Background())
	if got.Kind != ResultTranscribed {
		t.Fatalf("kind = %v, want transcribed", got.Kind)
	}
	if got.Transcript != "neraka" {
		t.Errorf("transcript = %q, want neraka", got.Transcript)
	}
	if got.Lang != language.MustParse("id-ID") {
		t.Errorf("lang = %v, want id-ID", got.Lang)
	}

	calls := fake.callLog()
	want := []string{"ar-SA", "id-ID"}
	if len(calls) != len(want) || calls[0] != want[0] || calls[1] != want[1] {
		t.Errorf("calls = %v, want %v (en-US must not be attempted)", calls, want)
	}
}

func TestCascadeExhaustedIsNoSpeech(t *testing.T) {
	fake := &fakeCapability{
		errs: map[string]error{
			"ar-SA": noSpeech("ar-SA"),
			"id-ID": noSpeech("id-ID"),
			"en-US": noSpeech("en-US"),
		},
	}
	sess := NewSession(fake, nil, nil, nil)

	got := sess.Run(context.Background())
	if got.Kind != ResultNoSpeech {
		t.Fatalf("kind = %v, want no_speech_recognized", got.Kind)
	}
	if len(got.Attempts) != 3 {
		t.Errorf("attempts = %d, want 3", len(got.Attempts))
	}
}

// An empty transcript with no error also counts as silence.
func TestEmptyTranscriptIsNoSpeech(t *testing.T) {
	fake := &fakeCapability{transcripts: map[string]string{"ar-SA": "  "}}
	sess := NewSession(fake, []language.Tag{language.MustParse("ar-SA")}, nil, nil)

	if got := sess.Run(context.Background()); got.Kind != ResultNoSpeech {
		t.Errorf("kind = %v, want no_speech_recognized", got.Kind)
	}
}

func TestCascadeTransportFailureSurfaces(t *testing.T) {
	netErr := &RecognitionError{Kind: KindNetwork, Lang: language.MustParse("ar-SA"), Err: errors.New("socket closed")}
	fake := &fakeCapability{
		errs: map[string]error{
			"ar-SA": netErr,
			"id-ID": noSpeech("id-ID"),
			"en-US": noSpeech("en-US"),
		},
	}
	sess := NewSession(fake, nil, nil, nil)

	got := sess.Run(context.Background())
	if got.Kind != ResultTransportFailure {
		t.Fatalf("kind = %v, want transport_failure", got.Kind)
	}
	if !errors.Is(got.Err, netErr) {
		t.Errorf("err = %v, want the network fault", got.Err)
	}
}

func TestPermissionDeniedShortCircuits(t *testing.T) {
	fake := &fakeCapability{permissionErr: errors.New("microphone access refused")}
	sess := NewSession(fake, nil, nil, nil)

	got := sess.Run(context.Background())
	if got.Kind != ResultPermissionDenied {
		t.Fatalf("kind = %v, want permission_denied", got.Kind)
	}
	if calls := fake.callLog(); len(calls) != 0 {
		t.Errorf("cascade entered despite denial: %v", calls)
	}
}

func TestAbortTerminatesCascade(t *testing.T) {
	fake := &fakeCapability{
		errs: map[string]error{
			"ar-SA": &RecognitionError{Kind: KindAborted, Lang: language.MustParse("ar-SA")},
		},
		transcripts: map[string]string{"id-ID": "should never be heard"},
	}
	sess := NewSession(fake, nil, nil, nil)

	got := sess.Run(context.Background())
	if got.Kind != ResultCancelled {
		t.Fatalf("kind = %v, want cancelled (not no_speech_recognized)", got.Kind)
	}
	if calls := fake.callLog(); len(calls) != 1 {
		t.Errorf("calls = %v, want only ar-SA", calls)
	}
}

func TestCancelMidCascadeStopsAdvance(t *testing.T) {
	fake := &fakeCapability{
		errs: map[string]error{"ar-SA": noSpeech("ar-SA")},
	}
	sess := NewSession(fake, nil, nil, nil)
	fake.onCall = func(lang string) {
		if lang == "ar-SA" {
			sess.Cancel()
		}
	}

	got := sess.Run(context.Background())
	if got.Kind != ResultCancelled {
		t.Fatalf("kind = %v, want cancelled", got.Kind)
	}
	if calls := fake.callLog(); len(calls) != 1 {
		t.Errorf("calls = %v, want no advance past ar-SA", calls)
	}
	if sess.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", sess.State())
	}
}

func TestAttemptsAreSequential(t *testing.T) {
	fake := &fakeCapability{
		errs: map[string]error{
			"ar-SA": noSpeech("ar-SA"),
			"id-ID": noSpeech("id-ID"),
			"en-US": noSpeech("en-US"),
		},
	}
	sess := NewSession(fake, nil, nil, nil)
	sess.Run(context.Background())

	if fake.maxActive != 1 {
		t.Errorf("max concurrent acquisitions = %d, want 1", fake.maxActive)
	}
}

func TestStatusTransitions(t *testing.T) {
	fake := &fakeCapability{
		errs:        map[string]error{"ar-SA": noSpeech("ar-SA")},
		transcripts: map[string]string{"id-ID": "neraka"},
	}

	var statuses []Status
	sess := NewSession(fake, nil, func(st Status) { statuses = append(statuses, st) }, nil)
	sess.Run(context.Background())

	want := []Status{
		{State: StateListening, Lang: language.MustParse("ar-SA")},
		{State: StateFailed, Lang: language.MustParse("ar-SA")},
		{State: StateListening, Lang: language.MustParse("id-ID")},
		{State: StateTranscribed, Lang: language.MustParse("id-ID")},
	}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %+v, want %+v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("status[%d] = %+v, want %+v", i, statuses[i], want[i])
		}
	}
}
