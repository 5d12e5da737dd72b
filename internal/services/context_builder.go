package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/store"
)

// systemPrompt fixes the assistant persona and behavioral constraints for
// every AI call.
const systemPrompt = `You are ShopperGPT, a friendly, expert, and highly personalized AI shopping assistant operating on WhatsApp.
Your goal is to provide an exceptional, human-like customer service experience, making online shopping easier and more enjoyable.

Key characteristics:
- Conversational & Engaging: Chat naturally, understand nuances, and maintain context.
- Personalized: Leverage user profile (style, budget), past interactions, and stated needs.
- Knowledgeable: Possess broad knowledge of fashion, electronics, gifts, trends, etc.
- Helpful & Proactive: Offer relevant suggestions and comparisons.
- Trustworthy: Explain recommendations briefly if asked. Respect user privacy.
- Action-Oriented: Guide users towards a purchase decision with clear product info.

Constraint: Do not invent products or prices. If you need product details, state that you will look them up.
Constraint: Always prioritize the user's stated needs and preferences.
Constraint: Keep responses concise and suitable for WhatsApp chat format.`

// ContextBuilder assembles the bounded conversation window submitted to the
// model. It never mutates storage and is pure given the stored message
// sequence and the current inbound text.
type ContextBuilder struct {
	store      store.Store
	fetchLimit int // how many stored messages to pull (newest first)
	turnCap    int // how many of those actually enter the request
}

func NewContextBuilder(st store.Store, fetchLimit, turnCap int) *ContextBuilder {
	if fetchLimit <= 0 {
		fetchLimit = 20
	}
	if turnCap <= 0 {
		turnCap = 10
	}
	return &ContextBuilder{store: st, fetchLimit: fetchLimit, turnCap: turnCap}
}

// Build produces the ordered role/content list for one AI call: the system
// prompt, up to turnCap history turns oldest-first, then the current message
// as the final user turn.
func (b *ContextBuilder) Build(ctx context.Context, userID int64, currentMessage string) ([]openai.ChatCompletionMessage, error) {
	history, err := b.store.GetUserMessages(ctx, userID, b.fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching conversation history: %w", err)
	}

	// The store returns newest first; reverse to oldest first for the model.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	// Cap the turns actually included, dropping the oldest entries first.
	if len(history) > b.turnCap {
		history = history[len(history)-b.turnCap:]
	}

	conversation := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	conversation = append(conversation, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleAssistant
		if msg.Sender == models.SenderUser {
			role = openai.ChatMessageRoleUser
		}
		conversation = append(conversation, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}
	conversation = append(conversation, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: currentMessage,
	})

	return conversation, nil
}
