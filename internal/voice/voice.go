// Package voice models speech output and speech or text input as capabilities
// the interview loop can depend on without knowing the concrete provider.
package voice

import (
	"context"
	"errors"
)

var (
	ErrPermissionDenied = errors.New("microphone permission denied")
	ErrNoSpeech         = errors.New("speech recognition ended repeatedly without a result")
)

// Transcript is one recognition result. Partial results may be revised by
// later ones; a Final result closes an utterance.
type Transcript struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// Speaker utters text and returns once the utterance has completed.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Listener captures one answer attempt. The returned channel carries partial
// and final transcripts and is closed when capture ends or ctx is cancelled.
type Listener interface {
	Listen(ctx context.Context) (<-chan Transcript, error)
}

// Recognizer is a speech-to-text engine such as the browser's recognition API.
type Recognizer interface {
	// RequestPermission asks for microphone access and reports whether it was granted.
	RequestPermission(ctx context.Context) (bool, error)
	// Recognize runs a single recognition pass, sending results to out until
	// the engine stops on its own or ctx is cancelled. Sends must honour ctx.
	Recognize(ctx context.Context, out chan<- Transcript) error
}

func send(ctx context.Context, out chan<- Transcript, t Transcript) bool {
	select {
	case out <- t:
		return true
	case <-ctx.Done():
		return false
	}
}
