// Package users is the registration and login store. Passwords are stored
// and compared in plaintext — preserved behavior of the demo site this
// service backs, not a security model.
package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"fleur/models"
	"fleur/utils"
)

var (
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
)

// minimum password length the demo fallback accepts
const demoPasswordMinLen = 6

// Repo is the durable backing for user records. FindByEmail matches
// case-sensitively, mirroring the source.
type Repo interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, userID string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
	UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) error
	SetAvatar(ctx context.Context, userID, path string) error
}

// Store wraps a Repo with the registration/login rules.
type Store struct {
	repo Repo
	now  func() time.Time
}

func NewStore(repo Repo) *Store {
	return &Store{repo: repo, now: time.Now}
}

// Register creates and persists a new user, rejecting duplicate emails
// without touching the existing record.
func (s *Store) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	user := models.User{
		UserID:      utils.GetUUID(),
		Name:        name,
		Email:       email,
		Password:    password,
		JoinedAt:    s.now(),
		Preferences: models.DefaultPreferences(),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login authenticates by email. Registered users need an exact password
// match. Unknown emails fall through to demo-mode: any password of
// sufficient length logs in with a fabricated transient profile that is
// never persisted. That fallback is deliberate demo-site behavior.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if user.Password != password {
			return models.User{}, ErrInvalidCredentials
		}
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	if len(password) < demoPasswordMinLen {
		return models.User{}, ErrInvalidCredentials
	}
	return fabricateDemoUser(email, s.now()), nil
}

// Get fetches a registered user by id.
func (s *Store) Get(ctx context.Context, userID string) (models.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdatePreferences replaces a user's preference bag.
func (s *Store) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) error {
	return s.repo.UpdatePreferences(ctx, userID, prefs)
}

// SetAvatar records the stored avatar path.
func (s *Store) SetAvatar(ctx context.Context, userID, path string) error {
	return s.repo.SetAvatar(ctx, userID, path)
}

// fabricateDemoUser builds the transient profile demo logins get: the
// display name is the email's local part with dots turned into spaces.
func fabricateDemoUser(email string, now time.Time) models.User {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	name = strings.ReplaceAll(name, ".", " ")

	return models.User{
		UserID:      utils.GetUUID(),
		Name:        name,
		Email:       email,
		JoinedAt:    now,
		Preferences: models.DefaultPreferences(),
		Transient:   true,
	}
}
