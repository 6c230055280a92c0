package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskdeck/taskdeck/internal/model"
)

// CredentialStore persists the single signed token for this profile.
// Presence of a stored token means "authenticated" optimistically until a
// protected call is rejected.
type CredentialStore struct {
	path  string
	mu    sync.Mutex
	token string
}

// DefaultCredentialPath returns ~/.taskdeck/credentials.json
func DefaultCredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".taskdeck", "credentials.json"), nil
}

// NewCredentialStore loads any existing credential from path
func NewCredentialStore(path string) *CredentialStore {
	c := &CredentialStore{path: path}
	c.load()
	return c
}

// OpenDefaultCredentials opens the credential store at the default path
func OpenDefaultCredentials() (*CredentialStore, error) {
	path, err := DefaultCredentialPath()
	if err != nil {
		return nil, err
	}
	return NewCredentialStore(path), nil
}

type credentialFile struct {
	Token string `json:"token"`
}

func (c *CredentialStore) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	var f credentialFile
	if json.Unmarshal(data, &f) == nil {
		c.token = f.Token
	}
}

// Token returns the stored credential, empty when anonymous
func (c *CredentialStore) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Save persists a new credential to disk
func (c *CredentialStore) Save(token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(credentialFile{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	c.token = token
	return nil
}

// Clear discards the credential from memory and disk
func (c *CredentialStore) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DecodeUser extracts the user projection embedded in the token claims.
// The signature is not verified here; the server is the authority and
// rejects bad tokens on the first protected call.
func (c *CredentialStore) DecodeUser() (model.User, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token == "" {
		return model.User{}, ErrNotLoggedIn
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return model.User{}, fmt.Errorf("failed to decode credential: %w", err)
	}

	user := model.User{}
	if v, ok := claims["sub"].(string); ok {
		user.ID = v
	}
	if v, ok := claims["name"].(string); ok {
		user.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		user.Role = v
	}
	if v, ok := claims["avatar"].(string); ok {
		user.Avatar = v
	}
	return user, nil
}
