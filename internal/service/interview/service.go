package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/ayanpandit/PrepTera/internal/metrics"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
	"github.com/ayanpandit/PrepTera/internal/service/ai"
)

// DefaultCleanupDelay is how long a session survives after its feedback.
const DefaultCleanupDelay = 5 * time.Minute

// Questioner produces the question set for a new session.
type Questioner interface {
	Generate(ctx context.Context, jobRole, domain, interviewType string) ai.QuestionSet
}

// Evaluator turns an answered session into feedback text.
type Evaluator interface {
	Generate(ctx context.Context, s interview.Session) (string, error)
	Stream(ctx context.Context, s interview.Session) (*schema.StreamReader[*schema.Message], error)
}

// Options tune a Service. Zero values pick the defaults.
type Options struct {
	Store        interview.Store
	CleanupDelay time.Duration
	Now          func() time.Time
}

// Service runs the start / answer / feedback flow over a session store.
type Service struct {
	questions Questioner
	evaluator Evaluator
	store     interview.Store
	reaper    *reaper
	now       func() time.Time
}

// NewService wires the interview flow.
func NewService(questions Questioner, evaluator Evaluator, opts Options) *Service {
	if opts.Store == nil {
		opts.Store = interview.NewMemoryStore()
	}
	if opts.CleanupDelay <= 0 {
		opts.CleanupDelay = DefaultCleanupDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		questions: questions,
		evaluator: evaluator,
		store:     opts.Store,
		now:       opts.Now,
	}
	s.reaper = newReaper(opts.CleanupDelay, s.reap)
	return s
}

// Start creates a session and returns its first question.
func (s *Service) Start(ctx context.Context, req interview.StartRequest) (interview.StartResponse, error) {
	jobRole := strings.TrimSpace(req.JobRole)
	domain := strings.TrimSpace(req.Domain)
	interviewType := strings.TrimSpace(req.InterviewType)
	if jobRole == "" || domain == "" || interviewType == "" {
		return interview.StartResponse{}, ErrMissingFields
	}

	set := s.questions.Generate(ctx, jobRole, domain, interviewType)
	if len(set.Questions) == 0 {
		set.Questions = ai.FallbackQuestions(0)
		set.Source = ai.SourceFallback
	}

	session := interview.Session{
		ID:            uuid.NewString(),
		CandidateName: strings.TrimSpace(req.CandidateName),
		JobRole:       jobRole,
		Domain:        domain,
		InterviewType: interviewType,
		Questions:     set.Questions,
		StartTime:     s.now().UTC(),
	}
	if err := s.store.Create(ctx, session); err != nil {
		return interview.StartResponse{}, fmt.Errorf("create session: %w", err)
	}

	metrics.InterviewsStarted.Inc()
	metrics.ActiveSessions.Inc()
	log.Printf("[interview] session=%s started role=%q domain=%q type=%q questions=%d source=%s",
		session.ID, jobRole, domain, interviewType, session.Total(), set.Source)

	return interview.StartResponse{
		SessionID:      session.ID,
		FirstQuestion:  session.Questions[0],
		TotalQuestions: session.Total(),
	}, nil
}

// Answer records the answer to the current question and advances the session.
func (s *Service) Answer(ctx context.Context, req interview.AnswerRequest) (interview.AnswerResponse, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	answer := strings.TrimSpace(req.Answer)
	if sessionID == "" || answer == "" {
		return interview.AnswerResponse{}, ErrMissingAnswer
	}

	session, err := s.store.Append(ctx, sessionID, answer, s.now().UTC())
	if err != nil {
		return interview.AnswerResponse{}, err
	}
	metrics.AnswersRecorded.Inc()

	if session.Complete() {
		log.Printf("[interview] session=%s complete after %d answers", sessionID, len(session.Answers))
		return interview.AnswerResponse{
			Message:    interview.CompleteMessage,
			IsComplete: true,
		}, nil
	}

	return interview.AnswerResponse{
		NextQuestion:   session.CurrentQuestion(),
		QuestionNumber: session.Cursor + 1,
		TotalQuestions: session.Total(),
	}, nil
}

// Feedback evaluates the session and schedules its deletion.
func (s *Service) Feedback(ctx context.Context, sessionID string) (interview.FeedbackResponse, error) {
	session, err := s.lookup(ctx, sessionID)
	if err != nil {
		return interview.FeedbackResponse{}, err
	}
	if s.evaluator == nil {
		return interview.FeedbackResponse{}, fmt.Errorf("%w: no evaluator configured", ErrUpstream)
	}

	text, err := s.evaluator.Generate(ctx, session)
	if err != nil {
		log.Printf("[interview] session=%s feedback failed: %v", session.ID, err)
		return interview.FeedbackResponse{}, err
	}

	return s.finish(session, text), nil
}

// StreamFeedback evaluates the session in streaming mode, handing each chunk
// to onChunk. The session is scheduled for deletion once the stream ends.
func (s *Service) StreamFeedback(ctx context.Context, sessionID string, onChunk func(string) error) (interview.FeedbackResponse, error) {
	session, err := s.lookup(ctx, sessionID)
	if err != nil {
		return interview.FeedbackResponse{}, err
	}
	if s.evaluator == nil {
		return interview.FeedbackResponse{}, fmt.Errorf("%w: no evaluator configured", ErrUpstream)
	}

	stream, err := s.evaluator.Stream(ctx, session)
	if err != nil {
		log.Printf("[interview] session=%s feedback stream failed: %v", session.ID, err)
		return interview.FeedbackResponse{}, err
	}
	defer stream.Close()

	var text strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return interview.FeedbackResponse{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		text.WriteString(chunk.Content)
		if onChunk != nil {
			if err := onChunk(chunk.Content); err != nil {
				return interview.FeedbackResponse{}, fmt.Errorf("deliver feedback chunk: %w", err)
			}
		}
	}

	feedback := text.String()
	if strings.TrimSpace(feedback) == "" {
		feedback = ai.NoFeedbackText
	}
	return s.finish(session, feedback), nil
}

// Discard deletes a session right away and cancels its pending deletion.
func (s *Service) Discard(ctx context.Context, sessionID string) error {
	session, err := s.lookup(ctx, sessionID)
	if err != nil {
		return err
	}

	s.reaper.Cancel(session.ID)
	removed, err := s.store.Delete(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if removed {
		metrics.ActiveSessions.Dec()
		log.Printf("[interview] session=%s discarded", session.ID)
	}
	return nil
}

// Close cancels every pending deletion.
func (s *Service) Close() {
	s.reaper.Stop()
}

func (s *Service) lookup(ctx context.Context, sessionID string) (interview.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return interview.Session{}, ErrMissingSession
	}
	return s.store.Get(ctx, sessionID)
}

func (s *Service) finish(session interview.Session, feedback string) interview.FeedbackResponse {
	metrics.FeedbackGenerated.Inc()
	if s.reaper.Schedule(session.ID) {
		log.Printf("[reaper] session=%s scheduled for deletion in %s", session.ID, s.reaper.delay)
	}

	return interview.FeedbackResponse{
		Feedback:    feedback,
		SessionInfo: interview.InfoFor(session, s.now().UTC()),
	}
}

func (s *Service) reap(id string) {
	removed, err := s.store.Delete(context.Background(), id)
	if err != nil {
		log.Printf("[reaper] session=%s delete failed: %v", id, err)
		return
	}
	if !removed {
		return
	}
	metrics.SessionsReaped.Inc()
	metrics.ActiveSessions.Dec()
	log.Printf("[reaper] session=%s cleaned up", id)
}
