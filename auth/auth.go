// Package auth serves registration, login and logout, issuing JWTs and
// tracking active sessions in Redis.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"fleur/globals"
	"fleur/middleware"
	"fleur/models"
	"fleur/notify"
	"fleur/rdx"
	"fleur/users"
	"fleur/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const tokenTTL = 7 * 24 * time.Hour

// Handlers serves the auth HTTP surface.
type Handlers struct {
	store *users.Store
	hub   *notify.Hub
}

func NewHandlers(store *users.Store, hub *notify.Hub) *Handlers {
	return &Handlers{store: store, hub: hub}
}

func generateToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Name:   user.Name,
		Email:  user.Email,
		UserID: user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func (h *Handlers) issueSession(ctx context.Context, w http.ResponseWriter, user models.User, message string) {
	tokenString, err := generateToken(user)
	if err != nil {
		log.Println("token generation error:", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	if err := rdx.SaveSession(ctx, tokenString, user.UserID); err != nil {
		log.Println("session marker save error:", err)
	}

	h.hub.Notify(user.UserID, message, notify.KindSuccess)
	utils.SendResponse(w, http.StatusOK, map[string]any{
		"token": tokenString,
		"user":  user,
	}, message, nil)
}

// Register handles POST /api/auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	user, err := h.store.Register(ctx, input.Name, input.Email, input.Password)
	if errors.Is(err, users.ErrDuplicateEmail) {
		utils.RespondWithError(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		log.Println("Register error:", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	h.issueSession(ctx, w, user, "Welcome to our family, "+user.Name+"!")
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.store.Login(ctx, input.Email, input.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Println("Login error:", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	h.issueSession(ctx, w, user, "Welcome back, "+user.Name+"!")
}

// Logout handles POST /api/auth/logout: invalidates the session marker
// only, registered user records stay in the store.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := r.Header.Get("Authorization")
	if token == "" {
		http.Error(w, "No token provided", http.StatusUnauthorized)
		return
	}
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := rdx.DeleteSession(ctx, token); err != nil {
		log.Println("Logout session delete error:", err)
		http.Error(w, "Failed to invalidate session", http.StatusInternalServerError)
		return
	}

	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		h.hub.Notify(userID, "You have been logged out", notify.KindInfo)
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GuestSession handles POST /api/session/guest: mints the token guests
// present in X-Session-Key to own a cart and builder session.
func GuestSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"sessionKey": "guest-" + utils.GetUUID(),
	})
}
