package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type IRecommender interface {
	GenerateRecommendations(ctx context.Context, marketContext string, maxPicks int) ([]Recommendation, error)
}

type Recommendation struct {
	Symbol           string  `json:"symbol"`
	Action           string  `json:"action"` // "buy", "sell", "hold"
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning"`
	TargetAllocation float64 `json:"target_allocation"`
}

type recommendationList struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type recommenderService struct {
	client *openai.Client
	model  string
}

func NewRecommender() IRecommender {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4
	}

	return &recommenderService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (r *recommenderService) GenerateRecommendations(
	ctx context.Context,
	marketContext string,
	maxPicks int,
) ([]Recommendation, error) {
	systemPrompt := fmt.Sprintf(`You are a conservative equity analyst. Based on the market
news and sentiment summary provided by the user, propose at most %d stock recommendations.

IMPORTANT: Return ONLY valid JSON, nothing else.

Format:
{
  "recommendations": [
    {
      "symbol": "AAPL",
      "action": "buy",
      "confidence": 0.8,
      "reasoning": "strong earnings momentum and positive coverage",
      "target_allocation": 0.1
    }
  ]
}

Rules:
- action: "buy", "sell" or "hold"
- confidence: 0.0 to 1.0
- target_allocation: fraction of portfolio between 0.0 and 0.25
- only use ticker symbols that appear in or clearly relate to the provided news
- prefer "hold" when the evidence is mixed`, maxPicks)

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: marketContext,
		},
	}

	resp, err := r.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       r.model,
			Messages:    messages,
			Temperature: 0.3,
			MaxTokens:   600,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	var parsed recommendationList
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}

	picks := parsed.Recommendations
	if len(picks) > maxPicks {
		picks = picks[:maxPicks]
	}
	for i := range picks {
		picks[i].Symbol = strings.ToUpper(strings.TrimSpace(picks[i].Symbol))
		picks[i].Action = strings.ToLower(strings.TrimSpace(picks[i].Action))
	}

	return picks, nil
}
