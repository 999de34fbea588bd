package auth

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const refreshTokenFile = "refresh_tokens.json"

// refresh tokens outlive the short-lived access tokens and are persisted to
// disk so a restart does not log every admin out
const refreshTokenTTL = 7 * 24 * time.Hour

type refreshEntry struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	refreshTokenStore = map[string]refreshEntry{}
	loaded            bool
	mu                sync.Mutex
)

var ErrRefreshTokenInvalid = errors.New("invalid or expired refresh token")

// NewRefreshToken issues and stores a refresh token for email.
func NewRefreshToken(email string) (string, error) {
	token := uuid.NewString()

	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()
	refreshTokenStore[token] = refreshEntry{
		Email:     email,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	return token, saveRefreshTokens()
}

// ValidateRefreshToken resolves a refresh token to the email it was issued
// for. Expired tokens are removed on sight.
func ValidateRefreshToken(token string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()

	entry, ok := refreshTokenStore[token]
	if !ok {
		return "", ErrRefreshTokenInvalid
	}
	if time.Now().After(entry.ExpiresAt) {
		delete(refreshTokenStore, token)
		_ = saveRefreshTokens()
		return "", ErrRefreshTokenInvalid
	}
	return entry.Email, nil
}

// RevokeRefreshToken drops a token, e.g. on logout.
func RevokeRefreshToken(token string) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()
	delete(refreshTokenStore, token)
	_ = saveRefreshTokens()
}

// StartRefreshTokenCleaner periodically purges expired refresh tokens.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		mu.Lock()
		ensureLoaded()
		now := time.Now()
		changed := false
		for token, entry := range refreshTokenStore {
			if now.After(entry.ExpiresAt) {
				delete(refreshTokenStore, token)
				changed = true
			}
		}
		if changed {
			_ = saveRefreshTokens()
		}
		mu.Unlock()
	}
}

func ensureLoaded() {
	if loaded {
		return
	}
	loaded = true
	if err := loadRefreshTokens(); err != nil {
		log.Printf("Error loading refresh token file: %v", err)
	}
}

func loadRefreshTokens() error {
	data, err := os.ReadFile(refreshTokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			refreshTokenStore = map[string]refreshEntry{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &refreshTokenStore)
}

func saveRefreshTokens() error {
	data, err := json.MarshalIndent(refreshTokenStore, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(refreshTokenFile, data, 0600)
}
