package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/store"
)

// recommendationKeywords gates the product-suggestion lookup: the engine is
// only consulted when the AI reply contains at least one of these
// (case-insensitive substring match).
var recommendationKeywords = []string{
	"recomendo", "sugestões", "opções", "produtos", "encontrei", "alternativas",
}

// recommendationCount bounds how many suggestions are dispatched per reply.
const recommendationCount = 2

// ReplyProvider produces the assistant reply for a user message. Guaranteed
// non-throwing: failures arrive as fixed fallback text.
type ReplyProvider interface {
	GetReply(ctx context.Context, userID int64, userMessage string) string
}

// MessageSender posts one outbound text message to the provider. An error is
// a diagnostic signal only; callers never abort later stages on it.
type MessageSender interface {
	SendText(ctx context.Context, to, body string) (*models.SendMessageResponse, error)
}

// Recommender looks up product suggestions for a user and query.
type Recommender interface {
	Recommend(ctx context.Context, user *models.User, query string, limit int) ([]models.RecommendedProduct, error)
}

// WebhookService runs the inbound webhook pipeline: classify, resolve user,
// persist, reply, optionally recommend, dispatch.
type WebhookService struct {
	store       store.Store
	ai          ReplyProvider
	sender      MessageSender
	recommender Recommender
	logger      *zap.Logger
}

func NewWebhookService(st store.Store, ai ReplyProvider, sender MessageSender, recommender Recommender, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		store:       st,
		ai:          ai,
		sender:      sender,
		recommender: recommender,
		logger:      logger,
	}
}

// ProcessPayload handles one webhook delivery end to end and reports the
// outcome as a value. It runs out-of-band relative to the webhook
// acknowledgment; nothing it does can fail the HTTP response, and a failure
// in one stage never aborts later independent stages.
func (s *WebhookService) ProcessPayload(ctx context.Context, payload models.WebhookPayload) models.ProcessResult {
	event := models.ClassifyPayload(payload)

	switch event.Kind {
	case models.EventStatus:
		s.logger.Debug("received status update")
		return models.ProcessResult{Status: models.ProcessStatusStatusUpdate}
	case models.EventIgnored:
		s.logger.Info("ignoring webhook event", zap.String("reason", event.Reason))
		return models.ProcessResult{Status: models.ProcessStatusIgnored, Reason: event.Reason}
	}

	msg := event.Text
	s.logger.Info("processing inbound message",
		zap.String("whatsapp_id", msg.WaID),
		zap.String("message_id", msg.MessageID))

	// Webhook providers deliver at least once; drop redeliveries before any
	// write. A probe failure is logged and processing continues, trading a
	// possible duplicate reply for availability.
	if exists, err := s.store.HasUserMessage(ctx, msg.MessageID); err != nil {
		s.logger.Warn("redelivery probe failed, continuing",
			zap.String("message_id", msg.MessageID), zap.Error(err))
	} else if exists {
		s.logger.Info("dropping duplicate delivery", zap.String("message_id", msg.MessageID))
		return models.ProcessResult{Status: models.ProcessStatusIgnored, Reason: "duplicate delivery"}
	}

	user, err := s.resolveUser(ctx, msg)
	if err != nil {
		s.logger.Error("failed to resolve user",
			zap.String("whatsapp_id", msg.WaID), zap.Error(err))
		return models.ProcessResult{Status: models.ProcessStatusIgnored, Reason: "user resolution failed"}
	}

	if _, err := s.store.CreateMessage(ctx, store.CreateMessageParams{
		UserID:            user.ID,
		WhatsAppMessageID: msg.MessageID,
		Content:           msg.Body,
		Sender:            models.SenderUser,
	}); err != nil {
		// Reply anyway; the inbound text is still in hand.
		s.logger.Error("failed to persist inbound message",
			zap.Int64("user_id", user.ID), zap.Error(err))
	}

	reply := s.ai.GetReply(ctx, user.ID, msg.Body)

	// Synthesized id: the provider id prefixed, so assistant rows never
	// collide with provider-assigned ids.
	if _, err := s.store.CreateMessage(ctx, store.CreateMessageParams{
		UserID:            user.ID,
		WhatsAppMessageID: "ai_" + msg.MessageID,
		Content:           reply,
		Sender:            models.SenderAssistant,
	}); err != nil {
		s.logger.Error("failed to persist assistant message",
			zap.Int64("user_id", user.ID), zap.Error(err))
	}

	var recommendations []models.RecommendedProduct
	if replyTriggersRecommendations(reply) {
		recs, err := s.recommender.Recommend(ctx, user, msg.Body, recommendationCount)
		if err != nil {
			s.logger.Error("recommendation lookup failed",
				zap.Int64("user_id", user.ID), zap.Error(err))
		} else {
			recommendations = recs
		}
	}

	// The AI reply is dispatched first, then one message per recommendation
	// in lookup order. Send results are diagnostic only.
	if _, err := s.sender.SendText(ctx, msg.From, reply); err != nil {
		s.logger.Error("failed to send reply",
			zap.String("to", msg.From), zap.Error(err))
	}
	for _, product := range recommendations {
		if _, err := s.sender.SendText(ctx, msg.From, formatRecommendation(product)); err != nil {
			s.logger.Error("failed to send recommendation",
				zap.String("to", msg.From), zap.String("product_id", product.ID), zap.Error(err))
		}
	}

	return models.ProcessResult{Status: models.ProcessStatusProcessed}
}

// resolveUser looks the sender up by WhatsApp ID, creating the record on
// first contact. The display name defaults to the phone number when the
// provider omits it (ClassifyPayload already applied that fallback).
func (s *WebhookService) resolveUser(ctx context.Context, msg models.TextEvent) (*models.User, error) {
	user, err := s.store.GetUserByWhatsAppID(ctx, msg.WaID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	profileName := msg.ProfileName
	return s.store.CreateUser(ctx, store.CreateUserParams{
		WhatsAppID:  msg.WaID,
		PhoneNumber: msg.From,
		ProfileName: &profileName,
	})
}

// replyTriggersRecommendations reports whether the AI reply contains any of
// the fixed trigger keywords.
func replyTriggersRecommendations(reply string) bool {
	lower := strings.ToLower(reply)
	for _, keyword := range recommendationKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// formatRecommendation renders one product as a WhatsApp text message.
func formatRecommendation(p models.RecommendedProduct) string {
	return fmt.Sprintf("*%s*\nPreço: %s\nLink: %s", p.Name, p.Price, p.AffiliateLink)
}
