// Package auth holds the client-side authentication state: the persisted
// credential and the current user projection. The store is constructed once
// at startup and injected into consumers; it is not an ambient global.
package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/model"
)

// ErrNotLoggedIn is returned by operations that require a credential
var ErrNotLoggedIn = errors.New("not logged in")

// State is the authentication lifecycle state
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store is the auth state container
type Store struct {
	client *api.Client
	creds  *CredentialStore

	mu    sync.Mutex
	state State
	user  model.User
	err   error
}

// NewStore creates the auth container. A stored credential flips the store
// to authenticated immediately; the user projection comes from the token
// claims and is replaced by the canonical profile on the next FetchProfile.
func NewStore(client *api.Client, creds *CredentialStore) *Store {
	s := &Store{client: client, creds: creds}
	if creds.Token() != "" {
		if user, err := creds.DecodeUser(); err == nil {
			s.state = StateAuthenticated
			s.user = user
		}
	}
	return s
}

// State returns the current lifecycle state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Authenticated reports whether a credential is held
func (s *Store) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// User returns the current user projection
func (s *Store) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Err returns the last recorded auth error
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Login exchanges credentials for a token. A failed login records the error
// and leaves any previously stored credential untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account and logs in
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	return s.authenticate(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// LoginGoogle authenticates with a Google identity token
func (s *Store) LoginGoogle(ctx context.Context, idToken, email, name, avatar string) error {
	return s.authenticate(ctx, "/auth/google", map[string]string{
		"token":  idToken,
		"email":  email,
		"name":   name,
		"avatar": avatar,
	})
}

func (s *Store) authenticate(ctx context.Context, path string, body map[string]string) error {
	s.mu.Lock()
	prev := s.state
	s.state = StateAuthenticating
	s.err = nil
	s.mu.Unlock()

	var resp authResponse
	if err := s.client.Do(ctx, http.MethodPost, path, body, &resp); err != nil {
		logger.Warn("authentication failed", logger.F("endpoint", path), logger.F("error", err))
		s.mu.Lock()
		s.state = prev
		s.err = err
		s.mu.Unlock()
		return err
	}

	if err := s.creds.Save(resp.Token); err != nil {
		s.mu.Lock()
		s.state = prev
		s.err = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = resp.User
	s.mu.Unlock()

	logger.Info("authenticated", logger.F("endpoint", path), logger.F("user", resp.User.Email))

	// The inline user payload shapes differ between endpoints; the profile
	// endpoint is the single canonical source.
	if err := s.FetchProfile(ctx); err != nil {
		logger.Warn("profile refresh after auth failed", logger.F("error", err))
	}
	return nil
}

// FetchProfile loads the canonical user from the profile endpoint. A
// rejection means the credential is stale: it is discarded and the store
// reverts to anonymous.
func (s *Store) FetchProfile(ctx context.Context) error {
	if s.creds.Token() == "" {
		return ErrNotLoggedIn
	}

	var user model.User
	if err := s.client.Do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		if apiRejected(err) {
			logger.Info("credential rejected, logging out")
			_ = s.creds.Clear()
			s.mu.Lock()
			s.state = StateAnonymous
			s.user = model.User{}
			s.err = err
			s.mu.Unlock()
		}
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Logout clears the credential and user locally. No server call is made.
func (s *Store) Logout() error {
	if err := s.creds.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = model.User{}
	s.err = nil
	s.mu.Unlock()
	logger.Info("logged out")
	return nil
}

// apiRejected reports whether err is a definitive auth rejection rather
// than a transport failure. Transport failures keep the credential.
func apiRejected(err error) bool {
	return api.IsStatus(err, http.StatusUnauthorized) || api.IsStatus(err, http.StatusForbidden)
}
