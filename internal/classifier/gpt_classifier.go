package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/xaenox/inbox-triage/internal/models"
	"go.uber.org/zap"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GPTClassifier is the alternative engine: it asks the chat API for one
// short category per subject. Like the k-means engine, any failure assigns
// Uncategorized to every record.
type GPTClassifier struct {
	client      chatCompleter
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewGPTClassifier(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTClassifier {
	return &GPTClassifier{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *GPTClassifier) Categorize(records []*models.EmailRecord) []*models.EmailRecord {
	if len(records) == 0 {
		return records
	}

	ctx := context.Background()

	var subjects strings.Builder
	for i, record := range records {
		fmt.Fprintf(&subjects, "%d. %s\n", i+1, record.Subject)
	}

	prompt := fmt.Sprintf(`Assign each of the following email subjects a short category name (1-3 words).
Subjects with similar topics should share the same category.

Return the response as a JSON array of strings, one category per subject, in the same order:
["category1", "category2", ...]

Subjects:
%s`, subjects.String())

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		c.logger.Error("Failed to get GPT response", zap.Error(err))
		return assignFallback(records)
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("GPT response contained no choices")
		return assignFallback(records)
	}

	var categories []string
	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(response), &categories); err != nil {
		c.logger.Error("Failed to parse GPT response",
			zap.Error(err),
			zap.String("response", response))
		return assignFallback(records)
	}

	if len(categories) != len(records) {
		c.logger.Error("GPT returned wrong number of categories",
			zap.Int("expected", len(records)),
			zap.Int("got", len(categories)))
		return assignFallback(records)
	}

	for i, record := range records {
		category := strings.TrimSpace(categories[i])
		if category == "" {
			category = Uncategorized
		}
		record.Category = category
	}
	return records
}
