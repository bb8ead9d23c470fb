package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/devlink/internal/helpers"
)

// TokenStorage persists the auth token between runs.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryStorage) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStorage) Save(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Clear() error {
	return m.Save("")
}

// FileStorage keeps the token in a single file readable only by the owner.
type FileStorage struct {
	Path string
}

func (f FileStorage) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (f FileStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

func (f FileStorage) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// DecodeToken reads the claims of a token without verifying its signature.
// The server verifies; the client only needs to know who it is and when the
// token lapses.
func DecodeToken(token string) (*helpers.Claims, error) {
	token = strings.TrimPrefix(strings.TrimSpace(token), helpers.BearerPrefix)
	claims := &helpers.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}

// Expired reports whether claims lapse at or before now. Claims without an
// expiry never lapse.
func Expired(claims *helpers.Claims, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
