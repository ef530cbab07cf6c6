// Package voice drives a host speech-recognition capability through an
// ordered language cascade until a transcript is obtained, and composes the
// result with the search resolver.
package voice

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
)

// DefaultCascade is the fixed language order tried per capture session:
// Arabic first (recitations), then Indonesian, then English.
var DefaultCascade = []language.Tag{
	language.MustParse("ar-SA"),
	language.MustParse("id-ID"),
	language.MustParse("en-US"),
}

// ErrorKind classifies a failed recognition attempt.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindNoSpeech
	KindAudioCapture
	KindPermissionDenied
	KindNetwork
	KindAborted
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoSpeech:
		return "no_speech"
	case KindAudioCapture:
		return "audio_capture"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNetwork:
		return "network"
	case KindAborted:
		return "aborted"
	default:
		return "other"
	}
}

// RecognitionError is a typed failure from one recognition attempt.
type RecognitionError struct {
	Kind ErrorKind
	Lang language.Tag
	Err  error
}

func (e *RecognitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recognition [%s] %s: %v", e.Lang, e.Kind, e.Err)
	}
	return fmt.Sprintf("recognition [%s] %s", e.Lang, e.Kind)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// Capability is the host speech-to-text capability, injected at construction
// time. TranscribeOnce captures a single utterance in the given language with
// no interim results and a single alternative, returning the transcript or a
// *RecognitionError. CheckPermission reports whether microphone access is
// granted; it is consulted once per session, before the first attempt.
type Capability interface {
	TranscribeOnce(ctx context.Context, lang language.Tag) (string, error)
	CheckPermission(ctx context.Context) error
}
