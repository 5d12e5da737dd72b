// Package whatsapp posts outbound messages to the WhatsApp Cloud API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"shoppergpt-backend/internal/models"
)

// DefaultBaseURL is the Cloud API endpoint prefix, versioned.
const DefaultBaseURL = "https://graph.facebook.com/v19.0"

// ErrNotConfigured is returned when the bearer token or the sender phone
// number id is absent. No network call is attempted in that case.
var ErrNotConfigured = errors.New("whatsapp sender not configured")

// SenderConfig holds the credentials and endpoint for outbound sends.
type SenderConfig struct {
	APIToken      string
	PhoneNumberID string
	BaseURL       string // defaults to DefaultBaseURL
	Timeout       time.Duration
}

// Sender submits text-message send requests to the provider's per-sender-id
// endpoint using bearer credentials.
type Sender struct {
	cfg        SenderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSender(cfg SenderConfig, logger *zap.Logger) *Sender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Sender{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SendText posts one text message to the destination. Every failure mode
// (missing configuration, network error, non-success status) is signaled as
// an error return, never a panic; the parsed provider response on success is
// for diagnostic use only.
func (s *Sender) SendText(ctx context.Context, to, body string) (*models.SendMessageResponse, error) {
	if s.cfg.APIToken == "" || s.cfg.PhoneNumberID == "" {
		s.logger.Warn("skipping outbound send, sender not configured", zap.String("to", to))
		return nil, ErrNotConfigured
	}

	payload := models.SendMessageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             models.TextBody{Body: body},
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling send request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.cfg.BaseURL, s.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("building send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("outbound send failed", zap.String("to", to), zap.Error(err))
		return nil, fmt.Errorf("sending whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading send response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("provider rejected outbound send",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody))
		return nil, fmt.Errorf("whatsapp send returned status %d", resp.StatusCode)
	}

	var parsed models.SendMessageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		// The message went out; a malformed success body only costs
		// diagnostics.
		s.logger.Warn("could not parse provider send response",
			zap.String("to", to), zap.Error(err))
		return &models.SendMessageResponse{}, nil
	}

	messageID := ""
	if len(parsed.Messages) > 0 {
		messageID = parsed.Messages[0].ID
	}
	s.logger.Info("message sent",
		zap.String("to", to), zap.String("provider_message_id", messageID))
	return &parsed, nil
}
