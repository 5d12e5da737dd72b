package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shoppergpt-backend/internal/models"
	"shoppergpt-backend/internal/services"
	"shoppergpt-backend/internal/store"
	"shoppergpt-backend/pkg/httputil"
)

// AdminHandlers serves the dashboard API: login plus inspection and explicit
// mutation of user data.
type AdminHandlers struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

func NewAdminHandlers(adminSvc *services.AdminService, logger *zap.Logger) *AdminHandlers {
	return &AdminHandlers{adminService: adminSvc, logger: logger}
}

// HandleLogin handles POST /admin/login.
func (h *AdminHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Username == "" || req.Password == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, expiresAt, err := h.adminService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminDisabled):
			httputil.RespondError(w, http.StatusServiceUnavailable, "Admin API is not configured")
		case errors.Is(err, services.ErrInvalidCredentials):
			httputil.RespondError(w, http.StatusUnauthorized, "Incorrect username or password")
		default:
			h.logger.Error("admin login failed", zap.Error(err))
			httputil.RespondError(w, http.StatusInternalServerError, "Login failed due to an internal error")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.AdminLoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
	})
}

// HandleListUsers handles GET /admin/api/users.
func (h *AdminHandlers) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	users, err := h.adminService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.ListUsersResponse{Users: users})
}

// HandleGetUser handles GET /admin/api/users/{whatsappID}.
func (h *AdminHandlers) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	whatsappID := chi.URLParam(r, "whatsappID")

	user, err := h.adminService.GetUser(r.Context(), whatsappID)
	if err != nil {
		h.respondStoreError(w, err, "Failed to fetch user")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user)
}

// HandleUpdateProfile handles PATCH /admin/api/users/{whatsappID}/profile.
func (h *AdminHandlers) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	whatsappID := chi.URLParam(r, "whatsappID")

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.adminService.UpdateProfile(r.Context(), whatsappID, req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondStoreError(w, err, "Failed to update profile")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user)
}

// HandleGetConversation handles GET /admin/api/users/{whatsappID}/messages.
func (h *AdminHandlers) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	whatsappID := chi.URLParam(r, "whatsappID")
	limit := queryInt(r, "limit", 50)

	conversation, err := h.adminService.GetConversation(r.Context(), whatsappID, limit)
	if err != nil {
		h.respondStoreError(w, err, "Failed to fetch conversation")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, conversation)
}

// HandleGetWishlist handles GET /admin/api/users/{whatsappID}/wishlist.
func (h *AdminHandlers) HandleGetWishlist(w http.ResponseWriter, r *http.Request) {
	whatsappID := chi.URLParam(r, "whatsappID")

	items, err := h.adminService.GetWishlist(r.Context(), whatsappID)
	if err != nil {
		h.respondStoreError(w, err, "Failed to fetch wishlist")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, items)
}

// HandleAddWishlistItem handles POST /admin/api/users/{whatsappID}/wishlist.
func (h *AdminHandlers) HandleAddWishlistItem(w http.ResponseWriter, r *http.Request) {
	whatsappID := chi.URLParam(r, "whatsappID")

	var req models.AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	item, err := h.adminService.AddWishlistItem(r.Context(), whatsappID, req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondStoreError(w, err, "Failed to add wishlist item")
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, item)
}

// HandleRemoveWishlistItem handles DELETE /admin/api/users/{whatsappID}/wishlist/{itemID}.
func (h *AdminHandlers) HandleRemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	whatsappID := chi.URLParam(r, "whatsappID")
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid wishlist item ID")
		return
	}

	if err := h.adminService.RemoveWishlistItem(r.Context(), whatsappID, itemID); err != nil {
		h.respondStoreError(w, err, "Failed to remove wishlist item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandlers) respondStoreError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Not found")
		return
	}
	h.logger.Error(message, zap.Error(err))
	httputil.RespondError(w, http.StatusInternalServerError, message)
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
