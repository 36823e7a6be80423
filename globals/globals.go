package globals

import "os"

var JwtSecret = []byte(EnvOr("JWT_SECRET", "fleur_dev_secret"))

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"

// EnvOr reads an environment variable with a fallback default.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
