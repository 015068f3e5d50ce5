package voice

import (
	"context"
	"log"
	"sync"
)

// DefaultMaxRestarts bounds consecutive recognition passes that produce nothing.
const DefaultMaxRestarts = 3

// VoiceListener turns a Recognizer into a Listener. Microphone permission is
// requested before the first capture and recognition is restarted whenever the
// engine stops while an answer is still expected.
type VoiceListener struct {
	rec         Recognizer
	maxRestarts int

	mu      sync.Mutex
	granted bool
}

// NewVoiceListener wraps rec. maxRestarts <= 0 selects DefaultMaxRestarts.
func NewVoiceListener(rec Recognizer, maxRestarts int) *VoiceListener {
	if maxRestarts <= 0 {
		maxRestarts = DefaultMaxRestarts
	}
	return &VoiceListener{rec: rec, maxRestarts: maxRestarts}
}

// Listen implements Listener. It fails with ErrPermissionDenied when the user
// refuses microphone access; a later call asks again.
func (l *VoiceListener) Listen(ctx context.Context) (<-chan Transcript, error) {
	if err := l.ensurePermission(ctx); err != nil {
		return nil, err
	}

	out := make(chan Transcript)
	go l.run(ctx, out)
	return out, nil
}

func (l *VoiceListener) ensurePermission(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.granted {
		return nil
	}
	ok, err := l.rec.RequestPermission(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	l.granted = true
	return nil
}

func (l *VoiceListener) run(ctx context.Context, out chan<- Transcript) {
	defer close(out)

	idle := 0
	for {
		pass := make(chan Transcript)
		done := make(chan error, 1)
		go func() {
			done <- l.rec.Recognize(ctx, pass)
		}()

		heard := false
	forward:
		for {
			select {
			case t := <-pass:
				heard = true
				if !send(ctx, out, t) {
					<-done
					return
				}
			case err := <-done:
				if err != nil {
					if ctx.Err() == nil {
						log.Printf("[voice] recognition failed: %v", err)
					}
					return
				}
				break forward
			}
		}

		if ctx.Err() != nil {
			return
		}
		if heard {
			idle = 0
		} else {
			idle++
		}
		if idle > l.maxRestarts {
			log.Printf("[voice] %v", ErrNoSpeech)
			return
		}
		log.Printf("[voice] recognition ended while listening, restarting")
	}
}
