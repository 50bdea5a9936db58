package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 600
)

// NewOpenAIClient builds a client for the OpenAI API or any compatible endpoint.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// OpenAIModel generates replies with one chat-completion model id.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

func NewOpenAIModel(client *openai.Client, model string) *OpenAIModel {
	return &OpenAIModel{client: client, model: model}
}

// NewOpenAIModels returns one Model per id, in order, sharing a single client.
func NewOpenAIModels(client *openai.Client, ids []string) []Model {
	models := make([]Model, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		models = append(models, NewOpenAIModel(client, id))
	}
	return models
}

func (m *OpenAIModel) Name() string {
	return m.model
}

func (m *OpenAIModel) Generate(ctx context.Context, p Prompt) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.model,
		Messages:    toChatMessages(p),
		MaxTokens:   defaultMaxTokens,
		N:           1,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

func toChatMessages(p Prompt) []openai.ChatCompletionMessage {
	history := p.RecentHistory()
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)

	if p.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: p.System})
	}
	for _, h := range history {
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		// the web client labels its own turns "ai"
		if h.Role == openai.ChatMessageRoleAssistant || h.Role == "ai" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: h.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.Message})

	return msgs
}
