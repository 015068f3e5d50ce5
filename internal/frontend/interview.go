package frontend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ayanpandit/PrepTera/internal/model/interview"
	"github.com/ayanpandit/PrepTera/internal/voice"
)

// Messages shown to the candidate.
const (
	MsgEmptyAnswer = "Please provide an answer before proceeding."
	MsgNoConfig    = "No interview configuration found. Please configure your interview first."
	MsgApology     = "Sorry, something went wrong. Please try again."
)

var (
	ErrNoConfig    = errors.New("no interview configuration")
	ErrInputClosed = errors.New("answer input closed")
)

// API is the interview backend as seen by a front end. It is implemented by
// the HTTP client and by the in-process interview service.
type API interface {
	Start(ctx context.Context, req interview.StartRequest) (interview.StartResponse, error)
	Answer(ctx context.Context, req interview.AnswerRequest) (interview.AnswerResponse, error)
	Feedback(ctx context.Context, sessionID string) (interview.FeedbackResponse, error)
}

// Observer receives the events a view would render.
type Observer interface {
	Question(number, total int, text string)
	Transcript(t voice.Transcript)
	Notice(message string)
	Failed(err error)
	Completed(resp interview.FeedbackResponse)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Question(int, int, string) {}
func (NopObserver) Transcript(voice.Transcript) {}
func (NopObserver) Notice(string) {}
func (NopObserver) Failed(error) {}
func (NopObserver) Completed(interview.FeedbackResponse) {}

// Interview drives one session: start, answer every question, then fetch
// feedback. It only depends on "text arrived" events from the Listener; a
// Speaker, when set, narrates the questions and apologises on failures.
type Interview struct {
	API      API
	Listener voice.Listener
	Speaker  voice.Speaker
	Observer Observer
}

// Run executes the interview for cfg and returns the feedback.
func (iv *Interview) Run(ctx context.Context, cfg interview.StartRequest) (interview.FeedbackResponse, error) {
	obs := iv.Observer
	if obs == nil {
		obs = NopObserver{}
	}

	if strings.TrimSpace(cfg.JobRole) == "" || strings.TrimSpace(cfg.Domain) == "" || strings.TrimSpace(cfg.InterviewType) == "" {
		obs.Notice(MsgNoConfig)
		return interview.FeedbackResponse{}, ErrNoConfig
	}

	started, err := iv.API.Start(ctx, cfg)
	if err != nil {
		iv.fail(ctx, obs, err)
		return interview.FeedbackResponse{}, fmt.Errorf("start interview: %w", err)
	}

	sessionID := started.SessionID
	number, total, question := 1, started.TotalQuestions, started.FirstQuestion
	for {
		iv.ask(ctx, obs, number, total, question)

		resp, err := iv.submit(ctx, obs, sessionID)
		if err != nil {
			return interview.FeedbackResponse{}, err
		}
		if resp.IsComplete || resp.NextQuestion == "" {
			break
		}
		number, question = resp.QuestionNumber, resp.NextQuestion
		if resp.TotalQuestions > 0 {
			total = resp.TotalQuestions
		}
	}

	feedback, err := iv.API.Feedback(ctx, sessionID)
	if err != nil {
		iv.fail(ctx, obs, err)
		return interview.FeedbackResponse{}, fmt.Errorf("get feedback: %w", err)
	}

	obs.Completed(feedback)
	return feedback, nil
}

// submit collects an answer and sends it, retrying with a fresh answer when
// the backend rejects the submission.
func (iv *Interview) submit(ctx context.Context, obs Observer, sessionID string) (interview.AnswerResponse, error) {
	for {
		answer, err := iv.awaitAnswer(ctx, obs)
		if err != nil {
			return interview.AnswerResponse{}, err
		}

		resp, err := iv.API.Answer(ctx, interview.AnswerRequest{SessionID: sessionID, Answer: answer})
		switch {
		case err == nil:
			return resp, nil
		case ctx.Err() != nil:
			return interview.AnswerResponse{}, ctx.Err()
		case errors.Is(err, interview.ErrSessionComplete):
			return interview.AnswerResponse{Message: interview.CompleteMessage, IsComplete: true}, nil
		}

		iv.fail(ctx, obs, err)
		if errors.Is(err, interview.ErrSessionNotFound) {
			return interview.AnswerResponse{}, fmt.Errorf("submit answer: %w", err)
		}
	}
}

func (iv *Interview) ask(ctx context.Context, obs Observer, number, total int, question string) {
	obs.Question(number, total, question)
	if iv.Speaker == nil {
		return
	}
	if err := iv.Speaker.Speak(ctx, fmt.Sprintf("Question %d: %s", number, question)); err != nil {
		log.Printf("[interview] narration failed: %v", err)
	}
}

// awaitAnswer listens until a non-blank final transcript arrives. Blank
// submissions are rejected with a notice and listening resumes.
func (iv *Interview) awaitAnswer(ctx context.Context, obs Observer) (string, error) {
	for {
		listenCtx, cancel := context.WithCancel(ctx)
		transcripts, err := iv.Listener.Listen(listenCtx)
		if err != nil {
			cancel()
			iv.fail(ctx, obs, err)
			return "", err
		}

		rejected := false
		for t := range transcripts {
			obs.Transcript(t)
			if !t.Final {
				continue
			}
			if answer := strings.TrimSpace(t.Text); answer != "" {
				cancel()
				for range transcripts {
				}
				return answer, nil
			}
			rejected = true
			obs.Notice(MsgEmptyAnswer)
		}
		cancel()

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !rejected {
			return "", ErrInputClosed
		}
	}
}

func (iv *Interview) fail(ctx context.Context, obs Observer, err error) {
	obs.Failed(err)
	if iv.Speaker == nil || ctx.Err() != nil {
		return
	}
	if speakErr := iv.Speaker.Speak(ctx, MsgApology); speakErr != nil {
		log.Printf("[interview] apology failed: %v", speakErr)
	}
}
