package live

import (
	"context"
	"errors"
	"log"
	"time"

	handlerInterview "github.com/ayanpandit/PrepTera/internal/handler/interview"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
	"github.com/ayanpandit/PrepTera/internal/voice"
)

// speakTimeout bounds how long narration waits for the browser's speechEnded.
const speakTimeout = 60 * time.Second

// remoteSpeaker asks the browser to speak and waits for it to finish.
type remoteSpeaker struct {
	conn *connection
}

func (s *remoteSpeaker) Speak(ctx context.Context, text string) error {
	drain(s.conn.speechEnded)
	s.conn.send("speak", map[string]string{"text": text})

	select {
	case <-s.conn.speechEnded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(speakTimeout):
		log.Printf("[live] id=%s no speechEnded after %s, continuing", s.conn.id, speakTimeout)
		return nil
	}
}

// remoteRecognizer drives the browser's speech recognition.
type remoteRecognizer struct {
	conn *connection
}

func (r *remoteRecognizer) RequestPermission(ctx context.Context) (bool, error) {
	drain(r.conn.permissions)
	r.conn.send("requestPermission", nil)

	select {
	case granted := <-r.conn.permissions:
		return granted, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (r *remoteRecognizer) Recognize(ctx context.Context, out chan<- voice.Transcript) error {
	drain(r.conn.recognitionEnded)
	r.conn.send("listen", nil)

	for {
		select {
		case <-ctx.Done():
			r.conn.send("stopListening", nil)
			return ctx.Err()
		case <-r.conn.recognitionEnded:
			return nil
		case t := <-r.conn.transcripts:
			select {
			case out <- t:
			case <-ctx.Done():
				r.conn.send("stopListening", nil)
				return ctx.Err()
			}
		}
	}
}

// liveListener merges typed answers with speech recognition, so manual entry
// stays available in voice mode.
type liveListener struct {
	conn  *connection
	voice *voice.VoiceListener
}

func (l *liveListener) Listen(ctx context.Context) (<-chan voice.Transcript, error) {
	var spoken <-chan voice.Transcript
	if l.voice != nil {
		ch, err := l.voice.Listen(ctx)
		switch {
		case errors.Is(err, voice.ErrPermissionDenied):
			l.conn.send("notice", map[string]string{"message": "Microphone access denied. Please type your answer."})
		case err != nil:
			return nil, err
		default:
			spoken = ch
		}
	}

	out := make(chan voice.Transcript)
	go func() {
		defer close(out)
		for {
			var t voice.Transcript
			select {
			case <-ctx.Done():
				return
			case text := <-l.conn.answers:
				t = voice.Transcript{Text: text, Final: true}
			case tr, ok := <-spoken:
				if !ok {
					spoken = nil
					continue
				}
				t = tr
			}
			select {
			case out <- t:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// observer forwards interview events to the browser.
type observer struct {
	conn *connection
}

func (o *observer) Question(number, total int, text string) {
	o.conn.send("question", QuestionEvent{Number: number, Total: total, Text: text})
}

func (o *observer) Transcript(voice.Transcript) {}

func (o *observer) Notice(message string) {
	o.conn.send("notice", map[string]string{"message": message})
}

func (o *observer) Failed(err error) {
	_, message, _ := handlerInterview.Classify(err, "Something went wrong. Please try again.")
	o.conn.sendError(message)
}

func (o *observer) Completed(resp interview.FeedbackResponse) {
	o.conn.send("feedback", resp)
}

func drain[T any](ch chan T) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
