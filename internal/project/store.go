// Package project holds the client-side project state: the full project
// list and the single current project the detail views render from. All
// mutation goes through the store; views only read. The list is replaced
// wholesale on fetch, so a later fetch always wins over local edits.
package project

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/model"
)

var (
	// ErrNoCurrent is returned by sub-operations when no project is selected
	ErrNoCurrent = errors.New("no current project")
	// ErrNameRequired is returned when creating a project without a name
	ErrNameRequired = errors.New("project name is required")
)

// Draft is the client-supplied shape for a new project. The server assigns
// the identifier and timestamps.
type Draft struct {
	Name        string              `json:"name"`
	Status      model.ProjectStatus `json:"status"`
	StartDate   string              `json:"start_date"`
	Description string              `json:"description"`
}

// Store is the project state container
type Store struct {
	client *api.Client

	mu      sync.Mutex
	items   []model.Project
	current *model.Project
	err     error

	// pending holds pre-mutation snapshots keyed by project id while an
	// optimistic persist is in flight, so a failed call can be rolled back.
	pending map[string]*model.Project
}

// NewStore creates the project container
func NewStore(client *api.Client) *Store {
	return &Store{
		client:  client,
		pending: make(map[string]*model.Project),
	}
}

// Items returns a copy of the project list in server order
func (s *Store) Items() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, len(s.items))
	for i := range s.items {
		out[i] = *s.items[i].Clone()
	}
	return out
}

// Current returns a copy of the current project, or nil when none is selected
func (s *Store) Current() *model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Err returns the last recorded operation error
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// PendingWrites returns the number of optimistic persists in flight
func (s *Store) PendingWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// FetchAll replaces the project list wholesale with the server's. On
// failure the previous list is preserved and the error recorded.
func (s *Store) FetchAll(ctx context.Context) error {
	var items []model.Project
	if err := s.client.Do(ctx, http.MethodGet, "/projects", nil, &items); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	s.items = items
	s.err = nil
	// Keep the current pointer coherent with the fresh list
	if s.current != nil {
		if fresh := findByID(items, s.current.ID); fresh != nil {
			s.current = fresh.Clone()
		} else {
			s.current = nil
		}
	}
	s.mu.Unlock()

	logger.Debug("fetched projects", logger.F("count", len(items)))
	return nil
}

// Create posts a new project and appends the server-returned entry
func (s *Store) Create(ctx context.Context, draft Draft) (*model.Project, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrNameRequired
	}
	if draft.Status == "" {
		draft.Status = model.ProjectNotStarted
	}

	var created model.Project
	if err := s.client.Do(ctx, http.MethodPost, "/projects", draft, &created); err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, created)
	s.err = nil
	s.mu.Unlock()

	logger.Info("project created", logger.F("id", created.ID), logger.F("name", created.Name))
	return created.Clone(), nil
}

// Update applies a typed patch to the project and persists it. The list
// entry (and the current pointer, when it matches) is replaced with the
// server's representation on success.
func (s *Store) Update(ctx context.Context, id string, patch model.ProjectPatch) error {
	s.mu.Lock()
	entry := findByID(s.items, id)
	if entry == nil {
		s.mu.Unlock()
		return errors.New("project not found: " + id)
	}
	payload := model.ApplyProjectPatch(*entry.Clone(), patch)
	s.mu.Unlock()

	var saved model.Project
	if err := s.client.Do(ctx, http.MethodPut, "/projects/"+id, payload, &saved); err != nil {
		s.setErr(err)
		return err
	}

	s.adopt(saved)
	return nil
}

// Delete removes a project by id. When the deleted project is current,
// the current pointer is cleared as well.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Do(ctx, http.MethodDelete, "/projects/"+id, nil, nil); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.items = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.err = nil
	s.mu.Unlock()

	logger.Info("project deleted", logger.F("id", id))
	return nil
}

// SetCurrent selects the project the detail view renders. No network effect.
func (s *Store) SetCurrent(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p.Clone()
}

// ClearCurrent deselects the current project. No network effect.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// adopt replaces the list entry and current pointer with the server copy
func (s *Store) adopt(saved model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(saved)
	s.err = nil
}

func (s *Store) replaceLocked(p model.Project) {
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i] = *p.Clone()
			break
		}
	}
	if s.current != nil && s.current.ID == p.ID {
		s.current = p.Clone()
	}
}

func findByID(items []model.Project, id string) *model.Project {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
