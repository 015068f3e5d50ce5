package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/ayanpandit/PrepTera/internal/config"
	"github.com/ayanpandit/PrepTera/internal/metrics"
	"github.com/ayanpandit/PrepTera/internal/model/interview"
)

// ErrUpstream marks a failed call to the generation API.
var ErrUpstream = errors.New("upstream generation failed")

// NoFeedbackText is served when the upstream replies with no text.
const NoFeedbackText = "Unable to generate feedback at this time."

// FormatTranscript renders answered turns as numbered Q/A pairs.
func FormatTranscript(answers []interview.Answer) string {
	pairs := make([]string, 0, len(answers))
	for i, a := range answers {
		pairs = append(pairs, fmt.Sprintf("%d. Q: %s\nA: %s", i+1, a.Question, a.Answer))
	}
	return strings.Join(pairs, "\n\n")
}

// FeedbackGenerator produces the evaluation report for a session.
type FeedbackGenerator struct {
	chain  compose.Runnable[map[string]any, *schema.Message]
	params config.GenerationParams
}

// NewFeedbackGenerator compiles the evaluation chain.
func NewFeedbackGenerator(ctx context.Context, chatModel model.BaseChatModel, params config.GenerationParams) (*FeedbackGenerator, error) {
	if chatModel == nil {
		return nil, errors.New("feedback generator requires a chat model")
	}

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(feedbackTemplate())
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile feedback chain: %w", err)
	}

	return &FeedbackGenerator{chain: runnable, params: params}, nil
}

// Generate calls the upstream once. Transport and status failures are
// returned wrapped in ErrUpstream; an empty reply becomes NoFeedbackText.
func (g *FeedbackGenerator) Generate(ctx context.Context, s interview.Session) (string, error) {
	msg, err := g.chain.Invoke(ctx, feedbackInput(s), chainOptions(g.params)...)
	metrics.ObserveUpstream("feedback", err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		log.Printf("[ai] empty feedback for session=%s", s.ID)
		return NoFeedbackText, nil
	}
	return msg.Content, nil
}

// Stream runs the same evaluation in streaming mode.
func (g *FeedbackGenerator) Stream(ctx context.Context, s interview.Session) (*schema.StreamReader[*schema.Message], error) {
	stream, err := g.chain.Stream(ctx, feedbackInput(s), chainOptions(g.params)...)
	metrics.ObserveUpstream("feedback_stream", err)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return stream, nil
}

func feedbackInput(s interview.Session) map[string]any {
	return map[string]any{
		"interview_type_lower": strings.ToLower(s.InterviewType),
		"interview_type":       s.InterviewType,
		"job_role":             s.JobRole,
		"domain":               s.Domain,
		"transcript":           FormatTranscript(s.Answers),
	}
}
