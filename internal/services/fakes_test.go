package services

import (
	"context"
	"fmt"
	"time"

	"shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/store"
)

// fakeStore is an in-memory store.Store with per-operation error injection.
type fakeStore struct {
	users    map[string]*models.User
	messages []models.Message
	wishlist []models.WishlistItem

	nextUserID    int64
	nextMessageID int64

	getUserErr       error
	createUserErr    error
	createMessageErr error
	getMessagesErr   error
	hasMessageErr    error

	createUserCalls    int
	createMessageCalls int
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*models.User{}}
}

func (f *fakeStore) GetUserByWhatsAppID(ctx context.Context, whatsappID string) (*models.User, error) {
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	user, ok := f.users[whatsappID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, arg store.CreateUserParams) (*models.User, error) {
	f.createUserCalls++
	if f.createUserErr != nil {
		return nil, f.createUserErr
	}
	f.nextUserID++
	user := &models.User{
		ID:          f.nextUserID,
		WhatsAppID:  arg.WhatsAppID,
		PhoneNumber: arg.PhoneNumber,
		ProfileName: arg.ProfileName,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.users[arg.WhatsAppID] = user
	copied := *user
	return &copied, nil
}

func (f *fakeStore) UpdateUserProfile(ctx context.Context, whatsappID string, arg store.UpdateUserProfileParams) (*models.User, error) {
	user, ok := f.users[whatsappID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if arg.ProfileName != nil {
		user.ProfileName = arg.ProfileName
	}
	if arg.StylePreferences != nil {
		user.StylePreferences = arg.StylePreferences
	}
	if arg.BudgetRange != nil {
		user.BudgetRange = arg.BudgetRange
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	users := []models.User{}
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeStore) CreateMessage(ctx context.Context, arg store.CreateMessageParams) (*models.Message, error) {
	f.createMessageCalls++
	if f.createMessageErr != nil {
		return nil, f.createMessageErr
	}
	f.nextMessageID++
	msg := models.Message{
		ID:                f.nextMessageID,
		UserID:            arg.UserID,
		WhatsAppMessageID: arg.WhatsAppMessageID,
		Content:           arg.Content,
		Sender:            arg.Sender,
		Metadata:          arg.Metadata,
		CreatedAt:         time.Unix(1700000000+f.nextMessageID, 0).UTC(),
	}
	f.messages = append(f.messages, msg)
	copied := msg
	return &copied, nil
}

func (f *fakeStore) GetUserMessages(ctx context.Context, userID int64, limit int) ([]models.Message, error) {
	if f.getMessagesErr != nil {
		return nil, f.getMessagesErr
	}
	// Messages are appended chronologically; walk backwards for newest first.
	result := []models.Message{}
	for i := len(f.messages) - 1; i >= 0 && len(result) < limit; i-- {
		if f.messages[i].UserID == userID {
			result = append(result, f.messages[i])
		}
	}
	return result, nil
}

func (f *fakeStore) HasUserMessage(ctx context.Context, whatsappMessageID string) (bool, error) {
	if f.hasMessageErr != nil {
		return false, f.hasMessageErr
	}
	for _, m := range f.messages {
		if m.WhatsAppMessageID == whatsappMessageID && m.Sender == models.SenderUser {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AddWishlistItem(ctx context.Context, arg store.AddWishlistItemParams) (*models.WishlistItem, error) {
	item := models.WishlistItem{
		ID:          int64(len(f.wishlist) + 1),
		UserID:      arg.UserID,
		ProductID:   arg.ProductID,
		ProductName: arg.ProductName,
		AddedAt:     time.Now(),
	}
	f.wishlist = append(f.wishlist, item)
	copied := item
	return &copied, nil
}

func (f *fakeStore) GetWishlistItems(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	items := []models.WishlistItem{}
	for _, item := range f.wishlist {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeStore) RemoveWishlistItem(ctx context.Context, userID, itemID int64) error {
	for i, item := range f.wishlist {
		if item.ID == itemID && item.UserID == userID {
			f.wishlist = append(f.wishlist[:i], f.wishlist[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// seedMessage inserts a message directly, bypassing call counters.
func (f *fakeStore) seedMessage(userID int64, providerID, content, sender string) {
	f.nextMessageID++
	f.messages = append(f.messages, models.Message{
		ID:                f.nextMessageID,
		UserID:            userID,
		WhatsAppMessageID: providerID,
		Content:           content,
		Sender:            sender,
		CreatedAt:         time.Unix(1700000000+f.nextMessageID, 0).UTC(),
	})
}

// seedUser inserts a user directly.
func (f *fakeStore) seedUser(whatsappID, phone string) *models.User {
	f.nextUserID++
	user := &models.User{
		ID:          f.nextUserID,
		WhatsAppID:  whatsappID,
		PhoneNumber: phone,
	}
	f.users[whatsappID] = user
	return user
}

// fakeReplyProvider returns a canned reply.
type fakeReplyProvider struct {
	reply string
	calls int
}

func (f *fakeReplyProvider) GetReply(ctx context.Context, userID int64, userMessage string) string {
	f.calls++
	return f.reply
}

// fakeSender records outbound sends and optionally fails them.
type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) SendText(ctx context.Context, to, body string) (*models.SendMessageResponse, error) {
	f.sent = append(f.sent, body)
	if f.err != nil {
		return nil, f.err
	}
	return &models.SendMessageResponse{}, nil
}

// fakeRecommender returns canned products or an error.
type fakeRecommender struct {
	products []models.RecommendedProduct
	err      error
	calls    int
	lastN    int
}

func (f *fakeRecommender) Recommend(ctx context.Context, user *models.User, query string, limit int) ([]models.RecommendedProduct, error) {
	f.calls++
	f.lastN = limit
	if f.err != nil {
		return nil, f.err
	}
	if len(f.products) > limit {
		return f.products[:limit], nil
	}
	return f.products, nil
}

// textPayload builds a minimal valid text-message webhook delivery.
func textPayload(waID, from, messageID, body, profileName string) models.WebhookPayload {
	return models.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []models.WebhookEntry{{
			ID: "entry-1",
			Changes: []models.WebhookChange{{
				Field: "messages",
				Value: models.ChangeValue{
					MessagingProduct: "whatsapp",
					Metadata: models.ChangeMetadata{
						DisplayPhoneNumber: "15550000000",
						PhoneNumberID:      "phone-1",
					},
					Contacts: []models.WebhookContact{{
						WaID:    waID,
						Profile: models.ContactProfile{Name: profileName},
					}},
					Messages: []models.IncomingMessage{{
						From:      from,
						ID:        messageID,
						Timestamp: "1700000000",
						Type:      "text",
						Text:      &models.TextBody{Body: body},
					}},
				},
			}},
		}},
	}
}

var errBoom = fmt.Errorf("boom")
