package store

import (
	"context"
	"encoding/json"
	"errors"

	db_models "shoppergpt-backend/internal/models"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// CreateUserParams contains parameters for creating a user on first contact.
type CreateUserParams struct {
	WhatsAppID  string
	PhoneNumber string
	ProfileName *string
}

// UpdateUserProfileParams is a partial profile update keyed by WhatsApp ID.
// Nil fields are not touched.
type UpdateUserProfileParams struct {
	ProfileName         *string
	StylePreferences    *string
	BudgetRange         *string
	PreferredCategories json.RawMessage
	BrandPreferences    json.RawMessage
	Sizes               json.RawMessage
	ShoppingContext     json.RawMessage
}

// CreateMessageParams contains parameters for persisting one message.
type CreateMessageParams struct {
	UserID            int64
	WhatsAppMessageID string
	Content           string
	Sender            string // models.SenderUser or models.SenderAssistant
	Metadata          json.RawMessage
}

// AddWishlistItemParams contains parameters for adding a wishlist entry.
type AddWishlistItemParams struct {
	UserID          int64
	ProductID       string
	ProductName     string
	ProductURL      *string
	ProductImageURL *string
	Notes           *string
}

// Store defines the interface for database operations. This allows for
// mocking in tests and potential DB backend switching.
type Store interface {
	// User operations
	GetUserByWhatsAppID(ctx context.Context, whatsappID string) (*db_models.User, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (*db_models.User, error)
	UpdateUserProfile(ctx context.Context, whatsappID string, arg UpdateUserProfileParams) (*db_models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]db_models.User, error)

	// Message operations
	CreateMessage(ctx context.Context, arg CreateMessageParams) (*db_models.Message, error)
	// GetUserMessages returns up to limit messages for the user, newest first.
	GetUserMessages(ctx context.Context, userID int64, limit int) ([]db_models.Message, error)
	// HasUserMessage reports whether an inbound message with the given
	// provider id was already persisted. Backs the webhook redelivery probe.
	HasUserMessage(ctx context.Context, whatsappMessageID string) (bool, error)

	// Wishlist operations
	AddWishlistItem(ctx context.Context, arg AddWishlistItemParams) (*db_models.WishlistItem, error)
	GetWishlistItems(ctx context.Context, userID int64) ([]db_models.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, userID, itemID int64) error
}
