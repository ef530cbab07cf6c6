package voice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// State is the observable phase of a capture session.
type State int

const (
	StateIdle State = iota
	StateListening
	StateTranscribed
	StateFailed
	StateCancelled
	StateDone
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateTranscribed:
		return "transcribed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

// Status is reported to the observer on every state transition.
type Status struct {
	State State
	Lang  language.Tag // set while listening or after a per-language failure
}

// ResultKind tags the terminal outcome of a cascade.
type ResultKind int

const (
	// ResultTranscribed: a language attempt produced a transcript.
	ResultTranscribed ResultKind = iota
	// ResultNoSpeech: the cascade exhausted all languages without speech.
	ResultNoSpeech
	// ResultPermissionDenied: microphone access refused before the cascade.
	ResultPermissionDenied
	// ResultTransportFailure: the cascade exhausted and at least one attempt
	// failed on audio capture or network rather than silence.
	ResultTransportFailure
	// ResultCancelled: explicit cancellation terminated the session.
	ResultCancelled
)

func (k ResultKind) String() string {
	switch k {
	case ResultTranscribed:
		return "transcribed"
	case ResultNoSpeech:
		return "no_speech_recognized"
	case ResultPermissionDenied:
		return "permission_denied"
	case ResultTransportFailure:
		return "transport_failure"
	case ResultCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Attempt records one cascade step.
type Attempt struct {
	Lang       language.Tag
	Transcript string
	Err        *RecognitionError
}

// Result is the terminal outcome of one capture session.
type Result struct {
	Kind       ResultKind
	Transcript string
	Lang       language.Tag // language that produced the transcript
	Err        error        // underlying fault for ResultTransportFailure
	Attempts   []Attempt
}

// Session runs one voice capture cascade. Attempts execute strictly
// sequentially: the next language starts only after the previous attempt has
// fully settled, so the host microphone is never acquired twice. A session is
// single-use.
type Session struct {
	capability Capability
	cascade    []language.Tag
	onStatus   func(Status)
	logger     *slog.Logger

	// done closes when Run returns, cancelled or not.
	done chan struct{}

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewSession creates a session over the given capability. A nil cascade uses
// DefaultCascade; onStatus may be nil.
func NewSession(capability Capability, cascade []language.Tag, onStatus func(Status), logger *slog.Logger) *Session {
	if len(cascade) == 0 {
		cascade = DefaultCascade
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		capability: capability,
		cascade:    cascade,
		onStatus:   onStatus,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Done closes once Run has returned and the capability handle is released.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cancel terminates the session. The in-flight attempt's context is cancelled
// synchronously, releasing the capability handle; no further cascade steps
// run. Safe to call at any time, including after the session finished.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDone || s.state == StateCancelled {
		return
	}
	s.state = StateCancelled
	if s.cancel != nil {
		s.cancel()
	}
}

// Run executes the cascade and returns its terminal result. Microphone
// permission is checked once before the first attempt; a denial
// short-circuits without entering the cascade. Per-language failures are
// absorbed: they only surface through the aggregate result when the whole
// cascade fails.
func (s *Session) Run(ctx context.Context) Result {
	defer close(s.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.state == StateCancelled {
		s.mu.Unlock()
		return Result{Kind: ResultCancelled}
	}
	s.cancel = cancel
	s.mu.Unlock()

	if err := s.capability.CheckPermission(ctx); err != nil {
		s.logger.Info("microphone permission denied", "error", err)
		s.finish(StateDone)
		return Result{Kind: ResultPermissionDenied, Err: err}
	}

	var (
		attempts  []Attempt
		transport error
	)
	for _, lang := range s.cascade {
		if !s.enterListening(lang) {
			return Result{Kind: ResultCancelled, Attempts: attempts}
		}

		transcript, err := s.capability.TranscribeOnce(ctx, lang)
		if err == nil && strings.TrimSpace(transcript) != "" {
			s.transition(Status{State: StateTranscribed, Lang: lang})
			s.finish(StateDone)
			s.logger.Info("transcript obtained", "lang", lang.String(), "chars", len(transcript))
			attempts = append(attempts, Attempt{Lang: lang, Transcript: transcript})
			return Result{Kind: ResultTranscribed, Transcript: transcript, Lang: lang, Attempts: attempts}
		}

		recErr := classify(err, lang)
		attempts = append(attempts, Attempt{Lang: lang, Err: recErr})
		s.logger.Debug("attempt failed", "lang", lang.String(), "kind", recErr.Kind.String())

		switch recErr.Kind {
		case KindAborted:
			s.finish(StateCancelled)
			return Result{Kind: ResultCancelled, Attempts: attempts}
		case KindPermissionDenied:
			// Permission revoked mid-session: same short-circuit as upfront.
			s.finish(StateDone)
			return Result{Kind: ResultPermissionDenied, Err: recErr, Attempts: attempts}
		case KindAudioCapture, KindNetwork:
			transport = recErr
		}

		s.transition(Status{State: StateFailed, Lang: lang})
		if ctx.Err() != nil {
			s.finish(StateCancelled)
			return Result{Kind: ResultCancelled, Attempts: attempts}
		}
	}

	s.finish(StateDone)
	if transport != nil {
		return Result{Kind: ResultTransportFailure, Err: transport, Attempts: attempts}
	}
	s.logger.Info("cascade exhausted without transcript", "languages", len(s.cascade))
	return Result{Kind: ResultNoSpeech, Attempts: attempts}
}

// enterListening moves to LISTENING for lang unless the session was
// cancelled. Returns false when cancelled.
func (s *Session) enterListening(lang language.Tag) bool {
	s.mu.Lock()
	if s.state == StateCancelled {
		s.mu.Unlock()
		return false
	}
	s.state = StateListening
	s.mu.Unlock()
	s.notify(Status{State: StateListening, Lang: lang})
	return true
}

func (s *Session) transition(st Status) {
	s.mu.Lock()
	if s.state == StateCancelled {
		s.mu.Unlock()
		return
	}
	s.state = st.State
	s.mu.Unlock()
	s.notify(st)
}

func (s *Session) finish(terminal State) {
	s.mu.Lock()
	if s.state != StateCancelled {
		s.state = terminal
	}
	s.mu.Unlock()
}

func (s *Session) notify(st Status) {
	if s.onStatus != nil {
		s.onStatus(st)
	}
}

// classify folds an arbitrary capability error into a *RecognitionError.
// A nil error with an empty transcript counts as no speech. Context
// cancellation counts as aborted.
func classify(err error, lang language.Tag) *RecognitionError {
	if err == nil {
		return &RecognitionError{Kind: KindNoSpeech, Lang: lang}
	}
	var recErr *RecognitionError
	if errors.As(err, &recErr) {
		return recErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &RecognitionError{Kind: KindAborted, Lang: lang, Err: err}
	}
	return &RecognitionError{Kind: KindOther, Lang: lang, Err: err}
}
