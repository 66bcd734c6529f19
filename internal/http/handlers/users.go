package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/orders-be/internal/auth"
	"github.com/hongminglow/orders-be/internal/http/respond"
	"github.com/hongminglow/orders-be/internal/middleware"
	"github.com/hongminglow/orders-be/internal/models"
	"github.com/hongminglow/orders-be/internal/models/dto"
	"github.com/hongminglow/orders-be/internal/storage"
)

// UsersHandler owns registration, login, and the token verification
// endpoint that dependent services call over the network.
type UsersHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	local  *auth.LocalAuthenticator
	logger *slog.Logger
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(store storage.UserStore, tokens *auth.TokenManager, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{
		store:  store,
		tokens: tokens,
		local:  auth.NewLocalAuthenticator(tokens, store),
		logger: logger,
	}
}

// Register attaches user routes to the mux.
func (h *UsersHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /users/register", h.handleRegister)
	mux.HandleFunc("POST /users/login", h.handleLogin)
	mux.HandleFunc("POST /verify-token", h.handleVerifyToken)
}

func (h *UsersHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "Email already registered")
			return
		}
		h.logger.Error("create user failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{
		ID:        created.ID,
		Name:      created.Name,
		Email:     created.Email,
		CreatedAt: created.CreatedAt,
	})
}

func (h *UsersHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	// A missing user and a wrong password produce the same response, so a
	// failed login never confirms whether the email is registered.
	user, err := h.store.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login lookup failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.logger.Error("token generation failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *UsersHandler) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearer(r)
	if token == "" {
		respond.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	identity, err := h.local.Authenticate(r.Context(), token)
	if err != nil {
		status, reason := verifyFailure(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("verify token failed", "error", err)
		}
		respond.Error(w, status, reason)
		return
	}

	respond.JSON(w, http.StatusOK, dto.VerifiedUser{ID: identity.ID, Email: identity.Email})
}

// verifyFailure maps a verification error to the wire status and reason the
// delegated auth client relies on.
func verifyFailure(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, auth.ErrMissingSubject):
		return http.StatusUnauthorized, "Token missing 'sub' claim"
	case errors.Is(err, auth.ErrUnknownSubject):
		return http.StatusUnauthorized, "User not found"
	case errors.Is(err, auth.ErrTokenMalformed):
		detail := strings.TrimPrefix(err.Error(), auth.ErrTokenMalformed.Error()+": ")
		return http.StatusUnauthorized, "Invalid token: " + detail
	default:
		return http.StatusInternalServerError, "failed to verify token"
	}
}
