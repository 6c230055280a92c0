package project

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/model"
)

// Sub-operations patch one collection of the current project and persist
// the whole project. The local mutation is optimistic: it is applied
// before the server call, registered in the pending-write table, and
// rolled back to the pre-mutation snapshot when the persist fails.

// ErrDuplicateMember is returned when adding a team member whose email is
// already on the project
var ErrDuplicateMember = errors.New("team member with this email already exists")

// ErrTaskNotFound is returned when patching or deleting an unknown task
var ErrTaskNotFound = errors.New("task not found")

// UpsertTask inserts the task when absent and replaces it when present,
// keyed by id, then persists the project. Blank titles are rejected before
// any network call.
func (s *Store) UpsertTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return model.ErrEmptyTitle
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	return s.persistCurrent(ctx, func(p *model.Project) {
		if existing := p.TaskByID(task.ID); existing != nil {
			*existing = task
			return
		}
		p.Tasks = append(p.Tasks, task)
	})
}

// PatchTask applies a typed patch to an existing task and persists
func (s *Store) PatchTask(ctx context.Context, taskID string, patch model.TaskPatch) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoCurrent
	}
	existing := s.current.TaskByID(taskID)
	if existing == nil {
		s.mu.Unlock()
		return ErrTaskNotFound
	}
	patched := model.ApplyTaskPatch(*existing, patch)
	s.mu.Unlock()

	if strings.TrimSpace(patched.Title) == "" {
		return model.ErrEmptyTitle
	}
	return s.persistCurrent(ctx, func(p *model.Project) {
		if t := p.TaskByID(taskID); t != nil {
			*t = patched
		}
	})
}

// DeleteTask removes a task by id and persists
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	return s.persistCurrent(ctx, func(p *model.Project) {
		kept := p.Tasks[:0]
		for _, t := range p.Tasks {
			if t.ID != taskID {
				kept = append(kept, t)
			}
		}
		p.Tasks = kept
	})
}

// AddResource stamps and appends a resource, then persists. createdBy is
// the id of the acting user.
func (s *Store) AddResource(ctx context.Context, res model.Resource, createdBy string) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.Type == "" {
		res.Type = model.ResourceLink
	}
	res.CreatedAt = time.Now().UTC()
	res.CreatedBy = createdBy
	return s.persistCurrent(ctx, func(p *model.Project) {
		p.Resources = append(p.Resources, res)
	})
}

// DeleteResource removes a resource by id and persists
func (s *Store) DeleteResource(ctx context.Context, resourceID string) error {
	return s.persistCurrent(ctx, func(p *model.Project) {
		kept := p.Resources[:0]
		for _, r := range p.Resources {
			if r.ID != resourceID {
				kept = append(kept, r)
			}
		}
		p.Resources = kept
	})
}

// AddTeamMember appends a member after the client-side uniqueness check.
// A duplicate email is rejected without a network call.
func (s *Store) AddTeamMember(ctx context.Context, member model.TeamMember) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoCurrent
	}
	if s.current.HasMember(member.Email) {
		s.mu.Unlock()
		return ErrDuplicateMember
	}
	s.mu.Unlock()

	return s.persistCurrent(ctx, func(p *model.Project) {
		p.Team = append(p.Team, member)
	})
}

// RemoveTeamMember removes a member by id and persists
func (s *Store) RemoveTeamMember(ctx context.Context, memberID string) error {
	return s.persistCurrent(ctx, func(p *model.Project) {
		kept := p.Team[:0]
		for _, m := range p.Team {
			if m.ID != memberID {
				kept = append(kept, m)
			}
		}
		p.Team = kept
	})
}

// persistCurrent applies mutate to the current project optimistically and
// puts the whole project. On failure the snapshot is restored; on success
// the server's representation replaces the optimistic one.
func (s *Store) persistCurrent(ctx context.Context, mutate func(*model.Project)) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoCurrent
	}
	id := s.current.ID
	snapshot := s.current.Clone()
	working := s.current.Clone()
	mutate(working)

	s.current = working.Clone()
	s.replaceLocked(*working)
	s.pending[id] = snapshot
	s.mu.Unlock()

	var saved model.Project
	err := s.client.Do(ctx, http.MethodPut, "/projects/"+id, working, &saved)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)

	if err != nil {
		logger.Warn("persist failed, rolling back", logger.F("project", id), logger.F("error", err))
		s.replaceLocked(*snapshot)
		s.err = err
		return err
	}

	s.replaceLocked(saved)
	s.err = nil
	return nil
}
