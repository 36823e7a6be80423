package utils

import (
	"net/http"
	"os"

	"fleur/globals"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// --- Request identity helpers ---

// GetUserIDFromRequest returns the authenticated user id, or "" for guests.
func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

// GetSessionKey returns the key that owns cart/customizer state for this
// request: the user id when authenticated, otherwise the guest token from
// the X-Session-Key header.
func GetSessionKey(r *http.Request) string {
	if userID := GetUserIDFromRequest(r); userID != "" {
		return userID
	}
	return r.Header.Get("X-Session-Key")
}

// --- Directory Helper ---

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
