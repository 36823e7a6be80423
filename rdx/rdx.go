// Package rdx owns the Redis connection: cart snapshots with TTL and
// active auth-session markers live here.
package rdx

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the package-level client. REDIS_URL defaults to a local
// instance for development.
func Init() error {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return Conn.Ping(ctx).Err()
}

// Persister adapts the Redis client to the cart store's persistence
// interface. Snapshot TTL doubles as the 24h cart expiry.
type Persister struct {
	client *redis.Client
}

func NewPersister(client *redis.Client) *Persister {
	return &Persister{client: client}
}

func (p *Persister) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return p.client.Set(ctx, key, data, ttl).Err()
}

func (p *Persister) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := p.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *Persister) Delete(ctx context.Context, key string) error {
	return p.client.Del(ctx, key).Err()
}

// --- auth session markers ---

const sessionTTL = 7 * 24 * time.Hour

func sessionKey(token string) string {
	return "auth:token:" + token
}

// SaveSession marks a token as an active login for its user.
func SaveSession(ctx context.Context, token, userID string) error {
	return Conn.Set(ctx, sessionKey(token), userID, sessionTTL).Err()
}

// DeleteSession invalidates a token; registered user records are untouched.
func DeleteSession(ctx context.Context, token string) error {
	return Conn.Del(ctx, sessionKey(token)).Err()
}
