package handlers

import (
	"TokenGate/internal/middleware"
	"TokenGate/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TokenHandler обрабатывает подтверждение токена по ссылке и опрос статуса.
type TokenHandler struct {
	TokenService *service.TokenService
	Logger       *zap.SugaredLogger
}

// NewTokenHandler создаёт хендлер токенов
func NewTokenHandler(tokenService *service.TokenService, logger *zap.SugaredLogger) *TokenHandler {
	return &TokenHandler{TokenService: tokenService, Logger: logger}
}

// TokenResponse тело ответа обоих маршрутов
type TokenResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Validate GET /auth/{token}: помечает токен подтверждённым.
func (h *TokenHandler) Validate(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	res, err := h.TokenService.Validate(r.Context(), token)
	if errors.Is(err, service.ErrEmptyToken) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Logger.Errorw("Validate: service error", "request_id", middleware.GetRequestID(r.Context()), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Status: res.Status, Message: res.Message})
}

// Status GET /auth/{token}/status: 200 для подтверждённого токена, 400 для pending.
func (h *TokenHandler) Status(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	res, err := h.TokenService.Status(r.Context(), token)
	if errors.Is(err, service.ErrEmptyToken) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.Logger.Errorw("Status: service error", "request_id", middleware.GetRequestID(r.Context()), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	code := http.StatusOK
	if !res.Validated() {
		code = http.StatusBadRequest
	}
	writeJSON(w, code, TokenResponse{Status: res.Status, Message: res.Message})
}

// tokenParam достаёт {token} из пути. chi матчит по RawPath, если он есть,
// поэтому в этом случае сегмент ещё нужно раскодировать.
func tokenParam(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "token")
	if r.URL.RawPath == "" {
		return raw, raw != ""
	}
	token, err := url.PathUnescape(raw)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
