package models

import (
	"encoding/json"
	"time"
)

// --- Generic API Responses ---

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Webhook Processing ---

// Processing statuses returned by the webhook pipeline.
const (
	ProcessStatusProcessed    = "processed"
	ProcessStatusIgnored      = "ignored"
	ProcessStatusStatusUpdate = "status_update_received"
)

// ProcessResult reports the outcome of processing one webhook delivery. It is
// a value, not an error: every failure class inside the pipeline degrades to
// a result so nothing propagates to the HTTP layer.
type ProcessResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// WebhookAck is the immediate acknowledgment body for webhook deliveries.
type WebhookAck struct {
	Status string `json:"status"`
}

// --- Outbound Send ---

// SendMessageRequest is the WhatsApp Cloud API send body for a text message.
type SendMessageRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             TextBody `json:"text"`
}

// SendMessageResponse is the provider's parsed success response. Consumed for
// diagnostics only; callers never block pipeline steps on it.
type SendMessageResponse struct {
	MessagingProduct string `json:"messaging_product"`
	Contacts         []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// --- Recommendations ---

// RecommendedProduct is one product suggestion produced by the recommendation
// engine. The engine is a placeholder returning fixed dummy data.
type RecommendedProduct struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	ImageURL      string `json:"image_url"`
	AffiliateLink string `json:"affiliate_link"`
	Description   string `json:"description,omitempty"`
}

// --- Admin API ---

// AdminLoginRequest is the POST /admin/login body.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginResponse carries the minted access token.
type AdminLoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// UpdateProfileRequest is a partial profile update. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	ProfileName         *string         `json:"profile_name,omitempty"`
	StylePreferences    *string         `json:"style_preferences,omitempty"`
	BudgetRange         *string         `json:"budget_range,omitempty"`
	PreferredCategories json.RawMessage `json:"preferred_categories,omitempty"`
	BrandPreferences    json.RawMessage `json:"brand_preferences,omitempty"`
	Sizes               json.RawMessage `json:"sizes,omitempty"`
	ShoppingContext     json.RawMessage `json:"shopping_context,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r UpdateProfileRequest) HasUpdates() bool {
	return r.ProfileName != nil ||
		r.StylePreferences != nil ||
		r.BudgetRange != nil ||
		r.PreferredCategories != nil ||
		r.BrandPreferences != nil ||
		r.Sizes != nil ||
		r.ShoppingContext != nil
}

// AddWishlistItemRequest is the body for adding a wishlist entry.
type AddWishlistItemRequest struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductURL      *string `json:"product_url,omitempty"`
	ProductImageURL *string `json:"product_image_url,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ConversationMessage is the admin-facing view of one stored message.
type ConversationMessage struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ListUsersResponse wraps the paged user listing.
type ListUsersResponse struct {
	Users []User `json:"users"`
}
