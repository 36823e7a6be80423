// Package profile serves the logged-in customer's profile: taste
// preferences and avatar uploads.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"fleur/models"
	"fleur/users"
	"fleur/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const avatarUploadDir = "static/avatars"

// Handlers serves the profile HTTP surface.
type Handlers struct {
	store *users.Store
}

func NewHandlers(store *users.Store) *Handlers {
	return &Handlers{store: store}
}

// GetProfile returns the caller's user record.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.store.Get(ctx, userID)
	if errors.Is(err, users.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		log.Println("GetProfile error:", err)
		http.Error(w, "Could not retrieve profile", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdatePreferences replaces the caller's preference bag.
func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if prefs.FavoriteEmotions == nil {
		prefs.FavoriteEmotions = []string{}
	}

	if err := h.store.UpdatePreferences(ctx, userID, prefs); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Println("UpdatePreferences error:", err)
		http.Error(w, "Failed to update preferences", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"preferences": prefs})
}

// UploadAvatar accepts a multipart image, stores a 300px thumbnail, and
// records the path on the user.
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image format")
		return
	}

	if err := utils.EnsureDir(avatarUploadDir); err != nil {
		log.Println("UploadAvatar mkdir error:", err)
		http.Error(w, "Failed to store avatar", http.StatusInternalServerError)
		return
	}

	fileName := utils.GetUUID() + ".jpg"
	path := filepath.Join(avatarUploadDir, fileName)

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, path); err != nil {
		log.Println("UploadAvatar save error:", err)
		http.Error(w, "Failed to store avatar", http.StatusInternalServerError)
		return
	}

	publicPath := "/static/avatars/" + fileName
	if err := h.store.SetAvatar(ctx, userID, publicPath); err != nil {
		log.Println("UploadAvatar record error:", err)
		http.Error(w, "Failed to store avatar", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"avatar": publicPath})
}
