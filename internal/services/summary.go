package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/teampulse/daily-report-api/internal/reports"
)

// SummaryService turns a pending-work report into a short natural-language
// digest for managers. Optional: wired only when an API key is configured.
type SummaryService struct {
	client *openai.Client
}

func NewSummaryService(apiKey string) *SummaryService {
	return &SummaryService{
		client: openai.NewClient(apiKey),
	}
}

// SummarizePendingReport asks the model for a concise digest of the
// outstanding work grouped by employee.
func (s *SummaryService) SummarizePendingReport(ctx context.Context, groups []reports.PendingGroup) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	if len(groups) == 0 {
		return "No outstanding work in the selected range.", nil
	}

	var b strings.Builder
	for _, group := range groups {
		fmt.Fprintf(&b, "%s (%s):\n", group.User.Name, group.User.Email)
		for _, task := range group.Tasks {
			if task.Reason != "" {
				fmt.Fprintf(&b, "- [%s] %s (blocked: %s)\n", task.Status, task.Text, task.Reason)
			} else {
				fmt.Fprintf(&b, "- [%s] %s\n", task.Status, task.Text)
			}
		}
		b.WriteString("\n")
	}

	prompt := fmt.Sprintf(`You are an assistant for an engineering manager.
Summarize the team's outstanding work below in at most five sentences.
Call out blockers first, then the largest backlogs. Plain text only.

%s`, b.String())

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
