// Package llm wraps the OpenAI API for text and image generation.
package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	textModel      = openai.ChatModelGPT4
	imageModel     = openai.ImageModelDallE3
	maxTokens      = 6000
	temperature    = 0.7
	imageSize      = openai.ImageGenerateParamsSize1024x1024
	imageQuality   = openai.ImageGenerateParamsQualityStandard
)

// Client calls the OpenAI chat and image endpoints.
type Client struct {
	api openai.Client
}

// NewClient creates a client authenticated with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		api: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

// GenerateHTML sends a system message plus the redesign prompt to the text
// model and returns the raw completion.
func (c *Client) GenerateHTML(ctx context.Context, systemMessage, userPrompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: textModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemMessage),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage renders a single mockup image and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:  prompt,
		Model:   imageModel,
		N:       openai.Int(1),
		Size:    imageSize,
		Quality: imageQuality,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no URL")
	}
	return resp.Data[0].URL, nil
}
