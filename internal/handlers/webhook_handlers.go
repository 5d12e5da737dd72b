package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/services"
	"shoppergpt-backend/pkg/httputil"
)

// WebhookProcessor is the slice of the webhook service the handlers need.
type WebhookProcessor interface {
	ProcessPayload(ctx context.Context, payload models.WebhookPayload) models.ProcessResult
}

// WebhookHandlers serves the provider-facing webhook endpoints.
type WebhookHandlers struct {
	processor       WebhookProcessor
	verifyToken     string
	pipelineTimeout time.Duration
	logger          *zap.Logger
}

func NewWebhookHandlers(processor WebhookProcessor, verifyToken string, pipelineTimeout time.Duration, logger *zap.Logger) *WebhookHandlers {
	if pipelineTimeout <= 0 {
		pipelineTimeout = 2 * time.Minute
	}
	return &WebhookHandlers{
		processor:       processor,
		verifyToken:     verifyToken,
		pipelineTimeout: pipelineTimeout,
		logger:          logger,
	}
}

// HandleVerify handles the GET subscription handshake. The provider passes
// hub.mode, hub.verify_token and hub.challenge as query parameters and
// expects the challenge echoed back as plain text.
func (h *WebhookHandlers) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	challenge, err := services.VerifyWebhook(
		q.Get("hub.mode"),
		q.Get("hub.verify_token"),
		q.Get("hub.challenge"),
		h.verifyToken,
	)
	if err != nil {
		if errors.Is(err, services.ErrVerificationBadRequest) {
			httputil.RespondError(w, http.StatusBadRequest, "Missing mode or token")
			return
		}
		h.logger.Warn("webhook verification failed")
		httputil.RespondError(w, http.StatusForbidden, "Verification token mismatch")
		return
	}

	h.logger.Info("webhook verified")
	httputil.RespondText(w, http.StatusOK, challenge)
}

// HandleReceive handles POST webhook deliveries. The payload is parsed at the
// boundary, the provider is acknowledged immediately, and the full pipeline
// runs in a background goroutine with its own deadline so model-inference or
// send latency never delays the HTTP response.
func (h *WebhookHandlers) HandleReceive(w http.ResponseWriter, r *http.Request) {
	var payload models.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}
	defer r.Body.Close()

	go func() {
		// Detached from the request context: the response is written before
		// processing finishes.
		ctx, cancel := context.WithTimeout(context.Background(), h.pipelineTimeout)
		defer cancel()

		result := h.processor.ProcessPayload(ctx, payload)
		h.logger.Info("webhook processing finished",
			zap.String("status", result.Status),
			zap.String("reason", result.Reason))
	}()

	httputil.RespondJSON(w, http.StatusOK, models.WebhookAck{Status: "received"})
}
