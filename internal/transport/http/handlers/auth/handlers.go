package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"diarias/internal/domain/auth"
	"diarias/internal/platform/requestctx"
	"diarias/internal/transport/http/api"
	"diarias/internal/transport/http/middleware"
	"diarias/internal/transport/http/shared"
)

type Handler struct {
	Store       *auth.Store
	Secret      string
	SessionTTL  time.Duration
	AllowSignup bool
}

func NewHandler(store *auth.Store, secret string, sessionTTL time.Duration, allowSignup bool) *Handler {
	return &Handler{Store: store, Secret: secret, SessionTTL: sessionTTL, AllowSignup: allowSignup}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.AllowSignup {
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self signup is disabled", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	if payload.Email != "" && !strings.Contains(payload.Email, "@") {
		v.Add("email", "must be a valid email address")
	}
	if len(payload.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	if _, err := h.Store.FindUserByEmail(r.Context(), payload.Email); err == nil {
		api.Fail(w, http.StatusConflict, "email_taken", "email already registered", requestctx.GetRequestID(r.Context()))
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to register", requestctx.GetRequestID(r.Context()))
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to register", requestctx.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.CreateUser(r.Context(), payload.Email, hash)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to register", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]string{"id": id, "email": payload.Email}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	user, err := h.Store.FindUserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	sessionID, err := auth.NewSessionToken()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.CreateSession(r.Context(), user.ID, auth.HashToken(sessionID), time.Now().Add(h.SessionTTL)); err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: user.ID, SessionID: sessionID}, h.SessionTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateLastLogin(r.Context(), user.ID); err != nil {
		slog.Warn("update last_login failed", "userId", user.ID, "err", err)
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": user.ID, "email": user.Email},
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.GetUser(r.Context()); ok && user.SessionID != "" {
		if err := h.Store.RevokeSession(r.Context(), user.UserID, auth.HashToken(user.SessionID)); err != nil {
			slog.Warn("logout session revoke failed", "userId", user.UserID, "err", err)
		}
	}
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	valid, err := h.Store.SessionValid(r.Context(), user.UserID, auth.HashToken(user.SessionID))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load session", requestctx.GetRequestID(r.Context()))
		return
	}
	if !valid {
		api.Fail(w, http.StatusUnauthorized, "session_expired", "session expired or revoked", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"id": user.UserID}, requestctx.GetRequestID(r.Context()))
}
