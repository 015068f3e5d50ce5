package ai

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/ayanpandit/PrepTera/internal/config"
	"github.com/ayanpandit/PrepTera/internal/metrics"
)

// Question set sources.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

var fallbackQuestions = []string{
	"Tell me about yourself and your background.",
	"Why are you interested in this position?",
	"What are your greatest strengths?",
	"Describe a challenging project you worked on.",
	"How do you handle working under pressure?",
	"What are your career goals for the next 5 years?",
	"Tell me about a time you had to learn something new quickly.",
	"How do you approach problem-solving?",
	"Describe your experience working in a team.",
	"Do you have any questions for us?",
}

var numberedItem = regexp.MustCompile(`\d+\.\s+`)

// QuestionSet is an ordered, non-empty list of interview questions.
type QuestionSet struct {
	Questions []string
	Source    string
}

// FallbackQuestions returns at most limit of the built-in generic questions.
func FallbackQuestions(limit int) []string {
	if limit <= 0 || limit > len(fallbackQuestions) {
		limit = len(fallbackQuestions)
	}
	return append([]string(nil), fallbackQuestions[:limit]...)
}

// ParseQuestions splits a numbered list into at most limit trimmed items.
func ParseQuestions(text string, limit int) []string {
	var questions []string
	for _, segment := range numberedItem.Split(text, -1) {
		q := strings.TrimSpace(segment)
		if q == "" {
			continue
		}
		questions = append(questions, q)
		if limit > 0 && len(questions) == limit {
			break
		}
	}
	return questions
}

// QuestionGenerator asks the upstream model for a question set and falls back
// to the generic list whenever that does not yield usable output.
type QuestionGenerator struct {
	chain  compose.Runnable[map[string]any, *schema.Message]
	limit  int
	params config.GenerationParams
}

// NewQuestionGenerator compiles the question chain. A nil chatModel yields a
// generator that always serves the fallback list.
func NewQuestionGenerator(ctx context.Context, chatModel model.BaseChatModel, limit int, params config.GenerationParams) (*QuestionGenerator, error) {
	if limit <= 0 {
		limit = len(fallbackQuestions)
	}

	g := &QuestionGenerator{limit: limit, params: params}
	if chatModel == nil {
		return g, nil
	}

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(questionTemplate())
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile question chain: %w", err)
	}
	g.chain = runnable
	return g, nil
}

// Generate never fails: any upstream or parsing problem yields the fallback set.
func (g *QuestionGenerator) Generate(ctx context.Context, jobRole, domain, interviewType string) QuestionSet {
	set := g.generate(ctx, jobRole, domain, interviewType)
	metrics.QuestionSets.WithLabelValues(set.Source).Inc()
	return set
}

func (g *QuestionGenerator) generate(ctx context.Context, jobRole, domain, interviewType string) QuestionSet {
	fallback := QuestionSet{Questions: FallbackQuestions(g.limit), Source: SourceFallback}
	if g.chain == nil {
		return fallback
	}

	input := map[string]any{
		"interview_type_lower": strings.ToLower(interviewType),
		"job_role":             jobRole,
		"domain":               domain,
		"count":                strconv.Itoa(g.limit),
	}

	msg, err := g.chain.Invoke(ctx, input, chainOptions(g.params)...)
	metrics.ObserveUpstream("questions", err)
	if err != nil {
		log.Printf("[ai] question generation failed, using fallback questions: %v", err)
		return fallback
	}
	if msg == nil {
		log.Println("[ai] question generation returned no message, using fallback questions")
		return fallback
	}

	questions := ParseQuestions(msg.Content, g.limit)
	if len(questions) == 0 {
		log.Println("[ai] API returned empty questions, using fallback")
		return fallback
	}

	log.Printf("[ai] using %d AI-generated questions", len(questions))
	return QuestionSet{Questions: questions, Source: SourceAI}
}
