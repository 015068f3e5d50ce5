package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayanpandit/PrepTera/internal/config"
)

var questionParams = config.GenerationParams{Temperature: 0.7, TopK: 40, TopP: 0.95, MaxTokens: 1024}

func TestParseQuestions(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"numbered", "1. First?\n2. Second?\n3. Third?", 10, []string{"First?", "Second?", "Third?"}},
		{"blank segments dropped", "\n1.  \n2. Only one?", 10, []string{"Only one?"}},
		{"limit applied", "1. a\n2. b\n3. c", 2, []string{"a", "b"}},
		{"no numbering", "Just some text", 10, []string{"Just some text"}},
		{"empty", "   ", 10, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseQuestions(tc.text, tc.limit))
		})
	}
}

func TestQuestionGeneratorUsesModelOutput(t *testing.T) {
	fake := &fakeChatModel{reply: "1. What is a goroutine?\n2. Explain channels.\n3. How does the scheduler work?"}
	gen, err := NewQuestionGenerator(context.Background(), fake, 10, questionParams)
	require.NoError(t, err)

	set := gen.Generate(context.Background(), "Software Engineer", "Technology", "Technical")

	assert.Equal(t, SourceAI, set.Source)
	assert.Equal(t, []string{"What is a goroutine?", "Explain channels.", "How does the scheduler work?"}, set.Questions)

	prompt := fake.lastPrompt()
	assert.Contains(t, prompt, "conducting a technical interview for a Software Engineer position in Technology")
	assert.Contains(t, prompt, "Generate exactly 10 high-quality")

	require.Len(t, fake.common, 1)
	require.NotNil(t, fake.common[0].Temperature)
	assert.InDelta(t, 0.7, *fake.common[0].Temperature, 1e-6)
	require.NotNil(t, fake.common[0].MaxTokens)
	assert.Equal(t, 1024, *fake.common[0].MaxTokens)
	require.NotNil(t, fake.sampling[0].TopK)
	assert.Equal(t, 40, *fake.sampling[0].TopK)
}

func TestQuestionGeneratorCapsAtLimit(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "%d. Question %d?\n", i, i)
	}
	fake := &fakeChatModel{reply: b.String()}
	gen, err := NewQuestionGenerator(context.Background(), fake, 10, questionParams)
	require.NoError(t, err)

	set := gen.Generate(context.Background(), "Software Engineer", "Technology", "Technical")
	assert.Len(t, set.Questions, 10)
	assert.Equal(t, "Question 10?", set.Questions[9])
}

func TestQuestionGeneratorFallsBack(t *testing.T) {
	cases := map[string]*fakeChatModel{
		"upstream error": {err: errors.New("connection refused")},
		"empty reply":    {reply: "  \n "},
	}

	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			gen, err := NewQuestionGenerator(context.Background(), fake, 10, questionParams)
			require.NoError(t, err)

			set := gen.Generate(context.Background(), "Software Engineer", "Technology", "Technical")
			assert.Equal(t, SourceFallback, set.Source)
			assert.Equal(t, FallbackQuestions(10), set.Questions)
			assert.Len(t, set.Questions, 10)
		})
	}
}

func TestQuestionGeneratorWithoutModel(t *testing.T) {
	gen, err := NewQuestionGenerator(context.Background(), nil, 0, questionParams)
	require.NoError(t, err)

	set := gen.Generate(context.Background(), "QA / Test Engineer", "Manual Testing", "Behavioral")
	assert.Equal(t, SourceFallback, set.Source)
	assert.Equal(t, "Tell me about yourself and your background.", set.Questions[0])
	assert.Equal(t, "Do you have any questions for us?", set.Questions[9])
}

func TestFallbackQuestionsLimit(t *testing.T) {
	assert.Len(t, FallbackQuestions(3), 3)
	assert.Len(t, FallbackQuestions(50), 10)

	got := FallbackQuestions(10)
	got[0] = "changed"
	assert.NotEqual(t, "changed", FallbackQuestions(10)[0])
}
