package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	response string
	err      error
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.response}},
		},
	}, nil
}

type emptyCompleter struct{}

func (f *emptyCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}

func newFakeGPTClassifier(completer chatCompleter) *GPTClassifier {
	return &GPTClassifier{
		client:      completer,
		model:       "gpt-3.5-turbo",
		maxTokens:   150,
		temperature: 0.7,
		logger:      zap.NewNop(),
	}
}

func TestGPTClassifierCategorize(t *testing.T) {
	t.Run("should assign returned categories in order", func(t *testing.T) {
		c := newFakeGPTClassifier(&fakeCompleter{response: `["Billing", "Meetings"]`})
		records := recordsFromSubjects([]string{"Invoice due", "Team meeting"})

		categorized := c.Categorize(records)

		assert.Equal(t, "Billing", categorized[0].Category)
		assert.Equal(t, "Meetings", categorized[1].Category)
	})

	t.Run("should fall back on API error", func(t *testing.T) {
		c := newFakeGPTClassifier(&fakeCompleter{err: errors.New("api unavailable")})
		records := recordsFromSubjects([]string{"Invoice due", "Team meeting"})

		for _, record := range c.Categorize(records) {
			assert.Equal(t, Uncategorized, record.Category)
		}
	})

	t.Run("should fall back on a response without choices", func(t *testing.T) {
		c := newFakeGPTClassifier(&emptyCompleter{})
		records := recordsFromSubjects([]string{"Invoice due", "Team meeting"})

		for _, record := range c.Categorize(records) {
			assert.Equal(t, Uncategorized, record.Category)
		}
	})

	t.Run("should fall back on malformed response", func(t *testing.T) {
		c := newFakeGPTClassifier(&fakeCompleter{response: "not json"})
		records := recordsFromSubjects([]string{"Invoice due"})

		for _, record := range c.Categorize(records) {
			assert.Equal(t, Uncategorized, record.Category)
		}
	})

	t.Run("should fall back on category count mismatch", func(t *testing.T) {
		c := newFakeGPTClassifier(&fakeCompleter{response: `["Billing"]`})
		records := recordsFromSubjects([]string{"Invoice due", "Team meeting"})

		for _, record := range c.Categorize(records) {
			assert.Equal(t, Uncategorized, record.Category)
		}
	})

	t.Run("should replace empty categories", func(t *testing.T) {
		c := newFakeGPTClassifier(&fakeCompleter{response: `["Billing", "  "]`})
		records := recordsFromSubjects([]string{"Invoice due", "Team meeting"})

		categorized := c.Categorize(records)

		assert.Equal(t, "Billing", categorized[0].Category)
		assert.Equal(t, Uncategorized, categorized[1].Category)
	})
}
