package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// AIService produces an optional natural-language summary of a
// recommendation result. The deterministic scoring engine never depends
// on it; when no API key is configured the service is nil and callers
// skip it.
type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SummarizeRecommendations asks the model for a short hiring-manager
// style note about the ranked candidates.
func (s *AIService) SummarizeRecommendations(ctx context.Context, result *RankedRecommendations) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Task: %q (priority %s, required skills: %s)\n",
		result.Task.Title, result.Task.Priority, strings.Join(result.Task.RequiredSkills, ", "))
	limit := len(result.Recommendations)
	if limit > 3 {
		limit = 3
	}
	for _, rec := range result.Recommendations[:limit] {
		fmt.Fprintf(&sb, "- %s (%s, %s): score %d, %s\n",
			rec.Employee.Name, rec.Employee.Role, rec.Employee.Department, rec.MatchScore, rec.Tier)
	}

	prompt := fmt.Sprintf(`You are an HR assistant. Given the ranked candidates below, write a two-sentence summary for a manager deciding who to assign the task to. Be factual; do not invent information.

%s`, sb.String())

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
