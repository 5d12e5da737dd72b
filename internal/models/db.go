package models

import (
	"encoding/json"
	"time"
)

// Message sender roles. The messages.sender column is constrained to these
// two values.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// User represents a WhatsApp user in the database. A row is created on the
// first inbound message from an unseen WhatsApp ID and is never deleted by
// the pipeline; profile fields are only mutated through explicit
// profile-update calls.
type User struct {
	ID                  int64           `db:"id" json:"id"`
	WhatsAppID          string          `db:"whatsapp_id" json:"whatsapp_id"`
	PhoneNumber         string          `db:"phone_number" json:"phone_number"`
	ProfileName         *string         `db:"profile_name" json:"profile_name,omitempty"`
	StylePreferences    *string         `db:"style_preferences" json:"style_preferences,omitempty"`
	BudgetRange         *string         `db:"budget_range" json:"budget_range,omitempty"`
	PreferredCategories json.RawMessage `db:"preferred_categories" json:"preferred_categories,omitempty"`
	BrandPreferences    json.RawMessage `db:"brand_preferences" json:"brand_preferences,omitempty"`
	Sizes               json.RawMessage `db:"sizes" json:"sizes,omitempty"`
	ShoppingContext     json.RawMessage `db:"shopping_context" json:"shopping_context,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`
}

// Message represents a single stored conversation message. Immutable once
// created. WhatsAppMessageID carries the provider id verbatim for inbound
// messages and a synthesized "ai_"-prefixed id for assistant replies, so it
// is indexed but not unique.
type Message struct {
	ID                int64           `db:"id" json:"id"`
	UserID            int64           `db:"user_id" json:"user_id"`
	WhatsAppMessageID string          `db:"whatsapp_message_id" json:"whatsapp_message_id"`
	Content           string          `db:"content" json:"content"`
	Sender            string          `db:"sender" json:"sender"`
	Metadata          json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// WishlistItem represents a product saved by a user. Created and removed only
// by explicit action; never pruned automatically.
type WishlistItem struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	ProductID       string    `db:"product_id" json:"product_id"`
	ProductName     string    `db:"product_name" json:"product_name"`
	ProductURL      *string   `db:"product_url" json:"product_url,omitempty"`
	ProductImageURL *string   `db:"product_image_url" json:"product_image_url,omitempty"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	AddedAt         time.Time `db:"added_at" json:"added_at"`
}
