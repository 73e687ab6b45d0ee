package transport

import (
	"net/http"
	"time"

	"techmarket/internal/domain"
	"techmarket/internal/middleware"
	"techmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminLoginRequest represents the admin login payload. Empty fields are
// reported by the service with the form message.
type AdminLoginRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Senha string `json:"senha" validate:"max=255"`
}

// EntryResponse tells the client which screen to open next
type EntryResponse struct {
	Route domain.Route `json:"route"`
}

// AdminLoginResponse is returned on a successful admin login
type AdminLoginResponse struct {
	Name        string       `json:"name"`
	Route       domain.Route `json:"route"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// AccessHandler serves the two entry actions
type AccessHandler struct {
	accessService service.AccessService
	logger        *zap.Logger
}

// NewAccessHandler creates a new AccessHandler
func NewAccessHandler(accessService service.AccessService, logger *zap.Logger) *AccessHandler {
	return &AccessHandler{
		accessService: accessService,
		logger:        logger,
	}
}

// RegisterRoutes registers the access routes. loginLimiter may be nil.
func (h *AccessHandler) RegisterRoutes(r chi.Router, loginLimiter func(http.Handler) http.Handler) {
	r.Route("/api/access", func(r chi.Router) {
		r.Post("/client", h.ClientEntry)

		if loginLimiter != nil {
			r.With(loginLimiter).Post("/admin", h.AdminLogin)
		} else {
			r.Post("/admin", h.AdminLogin)
		}
	})
}

// ClientEntry lets anyone into the product list
func (h *AccessHandler) ClientEntry(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, EntryResponse{Route: h.accessService.ClientEntry()})
}

// AdminLogin checks admin credentials and returns an access token
func (h *AccessHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !decodeRequest(w, r, &req) {
		h.logger.Debug("Admin login request rejected")
		return
	}

	session, err := h.accessService.AdminLogin(r.Context(), req.Name, req.Senha)
	if err != nil {
		h.logger.Debug("Admin login failed", zap.Error(err))
		respondWithServiceError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, AdminLoginResponse{
		Name:        session.Name,
		Route:       session.Route,
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
	})
}
