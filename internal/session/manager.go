package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"adminconsole/internal/logger"
	"adminconsole/internal/models"
	"adminconsole/internal/repository"
)

// StorageKey is the key the signed-in operator is stored under.
const StorageKey = "adminUser"

var (
	ErrNotAdmin  = errors.New("invalid credentials or not an admin account")
	ErrNoSession = errors.New("not signed in")
)

// Manager holds the signed-in operator. The record is persisted on login and
// removed on logout; every read goes through the store.
type Manager struct {
	repo repository.StateRepository
	now  func() time.Time

	mu sync.Mutex
}

func NewManager(repo repository.StateRepository) *Manager {
	return &Manager{repo: repo, now: time.Now}
}

// Login persists the operator. Only Admin accounts are accepted.
func (m *Manager) Login(ctx context.Context, user models.User) error {
	if user.Role != models.RoleAdmin {
		return ErrNotAdmin
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Save(ctx, StorageKey, payload); err != nil {
		return err
	}

	logger.Zlog.Info("operator signed in", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return nil
}

func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Delete(ctx, StorageKey); err != nil {
		return err
	}

	logger.Zlog.Info("operator signed out")
	return nil
}

// Current returns the stored operator. A record that cannot be decoded is
// treated as no session.
func (m *Manager) Current(ctx context.Context) (*models.User, error) {
	raw, err := m.repo.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		logger.Zlog.Warn("discarding unreadable session", zap.Error(err))
		return nil, ErrNoSession
	}
	return &user, nil
}

// IsAuthenticated reports whether a session with a usable token exists.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	user, err := m.Current(ctx)
	if err != nil || user.AccessToken == "" {
		return false
	}
	return !m.expired(user.AccessToken)
}

// Token returns the bearer token of the current session, or "".
func (m *Manager) Token() string {
	user, err := m.Current(context.Background())
	if err != nil {
		return ""
	}
	return user.AccessToken
}

// expired checks the exp claim without verifying the signature; the
// console does not hold the signing key. Opaque tokens never expire here.
func (m *Manager) expired(token string) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !m.now().Before(exp.Time)
}
