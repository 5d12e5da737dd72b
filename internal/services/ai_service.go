package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Fixed user-facing fallback strings, one per failure class. The reply client
// never surfaces an error to the pipeline; every failure degrades to one of
// these.
const (
	ReplyNotConfigured = "Desculpe, o serviço de IA não está configurado corretamente."
	ReplyAuthFailure   = "Desculpe, houve um problema de autenticação com o serviço de IA."
	ReplyRateLimited   = "Desculpe, estou recebendo muitas solicitações no momento. Tente novamente em breve."
	ReplyAPIError      = "Desculpe, houve um problema com o serviço de IA. Tente novamente mais tarde."
	ReplyUnexpected    = "Desculpe, não consegui processar sua solicitação no momento devido a um erro inesperado."
)

// AIServiceOptions carries model parameters for the reply client.
type AIServiceOptions struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// AIService invokes the hosted chat-completion endpoint. GetReply is
// guaranteed non-throwing to its caller.
type AIService struct {
	client         *openai.Client // nil when no API key is configured
	contextBuilder *ContextBuilder
	model          string
	maxTokens      int
	temperature    float32
	logger         *zap.Logger
}

func NewAIService(opts AIServiceOptions, builder *ContextBuilder, logger *zap.Logger) *AIService {
	var client *openai.Client
	if opts.APIKey != "" {
		cfg := openai.DefaultConfig(opts.APIKey)
		// The upstream client carries no default timeout; set one explicitly
		// so a stalled completion cannot pin a pipeline goroutine.
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		cfg.HTTPClient = &http.Client{Timeout: timeout}
		client = openai.NewClientWithConfig(cfg)
	} else {
		logger.Warn("no AI API key configured, replies degrade to a fixed response")
	}

	return &AIService{
		client:         client,
		contextBuilder: builder,
		model:          opts.Model,
		maxTokens:      opts.MaxTokens,
		temperature:    float32(opts.Temperature),
		logger:         logger,
	}
}

// GetReply returns the assistant reply for the user's current message. All
// failure classes map to a fixed apology string; no error escapes.
func (s *AIService) GetReply(ctx context.Context, userID int64, userMessage string) string {
	if s.client == nil {
		return ReplyNotConfigured
	}

	conversation, err := s.contextBuilder.Build(ctx, userID, userMessage)
	if err != nil {
		s.logger.Error("failed to build conversation context",
			zap.Int64("user_id", userID), zap.Error(err))
		return ReplyUnexpected
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    conversation,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		s.logger.Error("chat completion failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return mapCompletionError(err)
	}

	if len(resp.Choices) == 0 {
		s.logger.Error("chat completion returned no choices", zap.Int64("user_id", userID))
		return ReplyAPIError
	}

	s.logger.Info("chat completion succeeded",
		zap.Int64("user_id", userID),
		zap.Int("history_messages", len(conversation)-1),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// mapCompletionError translates upstream failures into the fixed apology
// strings: authentication, rate limit, generic API error, anything else.
func mapCompletionError(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return ReplyAuthFailure
		case http.StatusTooManyRequests:
			return ReplyRateLimited
		default:
			return ReplyAPIError
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return ReplyAuthFailure
		case http.StatusTooManyRequests:
			return ReplyRateLimited
		default:
			return ReplyAPIError
		}
	}

	return ReplyUnexpected
}
