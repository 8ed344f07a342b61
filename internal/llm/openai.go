package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a careful assistant that summarizes legal-brief citation verification reports. You only describe what the checker found and never reference cases outside the provided list."

// OpenAIProvider generates summaries through the Chat Completions API.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

// IsAvailable verifies the credentials with a model-list call.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Summarize turns a verification report into plain language.
func (p *OpenAIProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Report, req.AllowedCitations)
	}
	model := resolve(req.Model, p.config.Model, openai.GPT4oMini)

	ctx, cancel := context.WithTimeout(ctx, clientTimeout(p.config.Timeout, 30*time.Second))
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   resolveTokens(req.MaxTokens, p.config.MaxTokens),
		Temperature: llmTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty response")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	return &SummarizeResponse{
		Summary:        summary,
		CitedCitations: extractCitations(summary),
		Model:          model,
		TokensUsed:     resp.Usage.TotalTokens,
	}, nil
}
