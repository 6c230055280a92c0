package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/chat"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/project"
)

// session wires the state containers for one CLI invocation. The stores
// are constructed here once and handed to commands; nothing reaches for
// them as globals.
type session struct {
	cfg      *config.Config
	creds    *auth.CredentialStore
	auth     *auth.Store
	projects *project.Store
	chat     *chat.Board
}

func newSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	creds, err := auth.OpenDefaultCredentials()
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.ServerURL, creds)
	return &session{
		cfg:      cfg,
		creds:    creds,
		auth:     auth.NewStore(client, creds),
		projects: project.NewStore(client),
		chat:     chat.NewBoard(),
	}, nil
}

// requireLogin fails fast for commands that need a credential
func (s *session) requireLogin() error {
	if !s.auth.Authenticated() {
		return fmt.Errorf("not logged in, run 'taskdeck auth login' first")
	}
	return nil
}

// currentFilePath is where the selected project id is remembered between
// invocations (~/.taskdeck/current)
func currentFilePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "current"), nil
}

// rememberCurrent persists the selected project id
func rememberCurrent(projectID string) error {
	path, err := currentFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(projectID), 0644)
}

// forgetCurrent clears the persisted selection
func forgetCurrent() error {
	path, err := currentFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// restoreCurrent selects the remembered project if it is still in the list
func (s *session) restoreCurrent() {
	path, err := currentFilePath()
	if err != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	id := strings.TrimSpace(string(data))
	for _, p := range s.projects.Items() {
		if p.ID == id {
			s.projects.SetCurrent(p)
			return
		}
	}
}

// loadCurrent fetches the list and restores the selection, failing when
// no project is selected
func (s *session) loadCurrent(ctx context.Context) (*model.Project, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if err := s.projects.FetchAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	s.restoreCurrent()
	cur := s.projects.Current()
	if cur == nil {
		return nil, fmt.Errorf("no project selected, run 'taskdeck project set <id>'")
	}
	return cur, nil
}

// resolveProject finds a project by id or unique name prefix
func (s *session) resolveProject(ctx context.Context, ref string) (*model.Project, error) {
	if err := s.projects.FetchAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	items := s.projects.Items()
	var match *model.Project
	for i := range items {
		if items[i].ID == ref {
			return &items[i], nil
		}
		if strings.HasPrefix(strings.ToLower(items[i].Name), strings.ToLower(ref)) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous project reference: %s", ref)
			}
			match = &items[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("project not found: %s", ref)
	}
	return match, nil
}
