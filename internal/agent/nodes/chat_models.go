package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/vserve-support/server/internal/agent/model"
	logx "github.com/vserve-support/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	APIKey     string
	BaseURL    string
	RespConfig *model.ResponseModelConfig
	DescConfig *model.DescriptionModelConfig
}

// ChatModels holds the primary response model and the secondary model used
// for issue-description synthesis.
type ChatModels struct {
	Response    *gemini.ChatModel
	Description *gemini.ChatModel
}

// NewChatModels creates both chat models against a shared Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModelResponse, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.RespConfig.Model,
		Temperature: &config.RespConfig.Temperature,
		MaxTokens:   &config.RespConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating response model")
		return nil, fmt.Errorf("error creating response model: %w", err)
	}

	chatModelDescription, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.DescConfig.Model,
		Temperature: &config.DescConfig.Temperature,
		MaxTokens:   &config.DescConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating description model")
		return nil, fmt.Errorf("error creating description model: %w", err)
	}

	return &ChatModels{
		Response:    chatModelResponse,
		Description: chatModelDescription,
	}, nil
}
