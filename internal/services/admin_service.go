package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shoppergpt-backend/internal/auth"
	"shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/store"
)

// Admin service errors mapped to HTTP statuses by the handlers.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminDisabled      = errors.New("admin credentials not configured")
	ErrCreatingToken      = errors.New("failed to create access token")
	ErrValidation         = errors.New("validation failed")
)

// AdminConfig carries the credential and token settings for the admin API.
type AdminConfig struct {
	Username        string
	Password        string // plaintext or bcrypt hash
	JWTSecret       string
	TokenExpiration time.Duration
}

// AdminService backs the dashboard API: login plus inspection and explicit
// mutation of user data.
type AdminService struct {
	store  store.Store
	cfg    AdminConfig
	logger *zap.Logger
}

func NewAdminService(st store.Store, cfg AdminConfig, logger *zap.Logger) *AdminService {
	return &AdminService{store: st, cfg: cfg, logger: logger}
}

// Enabled reports whether admin credentials are configured. When false, the
// admin surface degrades to a fixed unavailable response.
func (s *AdminService) Enabled() bool {
	return s.cfg.Username != "" && s.cfg.Password != ""
}

// CheckCredentials validates a Basic credential pair.
func (s *AdminService) CheckCredentials(username, password string) bool {
	return auth.CheckAdminCredentials(username, password, s.cfg.Username, s.cfg.Password)
}

// Login validates admin credentials and mints an access token.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrAdminDisabled
	}
	if !s.CheckCredentials(username, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if s.cfg.JWTSecret == "" {
		return "", time.Time{}, ErrCreatingToken
	}

	token, expiresAt, err := auth.NewAccessToken(username, s.cfg.JWTSecret, s.cfg.TokenExpiration)
	if err != nil {
		s.logger.Error("failed to sign admin token", zap.Error(err))
		return "", time.Time{}, ErrCreatingToken
	}
	return token, expiresAt, nil
}

// ParseToken validates a Bearer token minted by Login.
func (s *AdminService) ParseToken(tokenString string) (*auth.AdminClaims, error) {
	if s.cfg.JWTSecret == "" {
		return nil, ErrAdminDisabled
	}
	return auth.ParseAccessToken(tokenString, s.cfg.JWTSecret)
}

// ListUsers returns a page of registered users.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.store.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetUser returns one user by WhatsApp ID.
func (s *AdminService) GetUser(ctx context.Context, whatsappID string) (*models.User, error) {
	return s.store.GetUserByWhatsAppID(ctx, whatsappID)
}

// GetConversation returns the user's recent messages, oldest first.
func (s *AdminService) GetConversation(ctx context.Context, whatsappID string, limit int) ([]models.ConversationMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	user, err := s.store.GetUserByWhatsAppID(ctx, whatsappID)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.GetUserMessages(ctx, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching conversation: %w", err)
	}

	// Store order is newest first; present chronologically.
	conversation := make([]models.ConversationMessage, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		conversation = append(conversation, models.ConversationMessage{
			Sender:    messages[i].Sender,
			Content:   messages[i].Content,
			Timestamp: messages[i].CreatedAt,
		})
	}
	return conversation, nil
}

// UpdateProfile applies an explicit partial profile update. Returns
// store.ErrNotFound (the absence signal) when the user does not exist.
func (s *AdminService) UpdateProfile(ctx context.Context, whatsappID string, req models.UpdateProfileRequest) (*models.User, error) {
	if !req.HasUpdates() {
		return nil, fmt.Errorf("%w: no profile fields provided", ErrValidation)
	}
	return s.store.UpdateUserProfile(ctx, whatsappID, store.UpdateUserProfileParams{
		ProfileName:         req.ProfileName,
		StylePreferences:    req.StylePreferences,
		BudgetRange:         req.BudgetRange,
		PreferredCategories: req.PreferredCategories,
		BrandPreferences:    req.BrandPreferences,
		Sizes:               req.Sizes,
		ShoppingContext:     req.ShoppingContext,
	})
}

// GetWishlist returns the user's wishlist items.
func (s *AdminService) GetWishlist(ctx context.Context, whatsappID string) ([]models.WishlistItem, error) {
	user, err := s.store.GetUserByWhatsAppID(ctx, whatsappID)
	if err != nil {
		return nil, err
	}
	return s.store.GetWishlistItems(ctx, user.ID)
}

// AddWishlistItem adds an item to the user's wishlist.
func (s *AdminService) AddWishlistItem(ctx context.Context, whatsappID string, req models.AddWishlistItemRequest) (*models.WishlistItem, error) {
	if req.ProductName == "" {
		return nil, fmt.Errorf("%w: product_name is required", ErrValidation)
	}
	user, err := s.store.GetUserByWhatsAppID(ctx, whatsappID)
	if err != nil {
		return nil, err
	}
	return s.store.AddWishlistItem(ctx, store.AddWishlistItemParams{
		UserID:          user.ID,
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		ProductURL:      req.ProductURL,
		ProductImageURL: req.ProductImageURL,
		Notes:           req.Notes,
	})
}

// RemoveWishlistItem removes one wishlist item, scoped to the user.
func (s *AdminService) RemoveWishlistItem(ctx context.Context, whatsappID string, itemID int64) error {
	user, err := s.store.GetUserByWhatsAppID(ctx, whatsappID)
	if err != nil {
		return err
	}
	return s.store.RemoveWishlistItem(ctx, user.ID, itemID)
}
