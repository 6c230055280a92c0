package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/taskdeck/taskdeck/internal/model"
	_ "modernc.org/sqlite"
)

// Store is the server's persistence layer. Projects are stored as one row
// per project with the team, resource and task collections as JSON columns;
// the client always reads and writes whole projects.
type Store struct {
	db       *sql.DB
	postgres bool
}

// userRecord is a stored account, password hash included
type userRecord struct {
	model.User
	PasswordHash string
}

// OpenStore opens the database behind dsn. A postgres:// DSN selects
// lib/pq; anything else is treated as a SQLite path.
func OpenStore(dsn string) (*Store, error) {
	driver := "sqlite"
	postgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	if postgres {
		driver = "postgres"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db, postgres: postgres}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind converts ? placeholders to $n for postgres
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateUser inserts an account and returns it with a generated id
func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash, role, avatar string) (userRecord, error) {
	u := userRecord{
		User: model.User{
			ID:     uuid.New().String(),
			Name:   name,
			Email:  email,
			Role:   role,
			Avatar: avatar,
		},
		PasswordHash: passwordHash,
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO users (id, name, email, password_hash, role, avatar, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Avatar,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return userRecord{}, err
	}
	return u, nil
}

// UserByEmail looks up an account by email
func (s *Store) UserByEmail(ctx context.Context, email string) (userRecord, error) {
	var u userRecord
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, name, email, password_hash, role, avatar FROM users WHERE email = ?`),
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar)
	return u, err
}

// UserByID looks up an account by id
func (s *Store) UserByID(ctx context.Context, id string) (userRecord, error) {
	var u userRecord
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, name, email, password_hash, role, avatar FROM users WHERE id = ?`),
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar)
	return u, err
}

// ListProjects returns the owner's projects in insertion order
func (s *Store) ListProjects(ctx context.Context, ownerID string) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, name, status, start_date, description, team, resources, tasks, created_at, updated_at
		FROM projects WHERE owner_id = ? ORDER BY seq`),
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject returns one project owned by ownerID
func (s *Store) GetProject(ctx context.Context, ownerID, id string) (model.Project, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, name, status, start_date, description, team, resources, tasks, created_at, updated_at
		FROM projects WHERE owner_id = ? AND id = ?`),
		ownerID, id,
	)
	return scanProject(row)
}

// CreateProject inserts a project and returns it with server-side fields set
func (s *Store) CreateProject(ctx context.Context, ownerID string, p model.Project) (model.Project, error) {
	p.ID = uuid.New().String()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Team == nil {
		p.Team = []model.TeamMember{}
	}
	if p.Resources == nil {
		p.Resources = []model.Resource{}
	}
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}

	team, resources, tasks, err := marshalCollections(p)
	if err != nil {
		return model.Project{}, err
	}

	// seq preserves insertion order across both backends
	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO projects (id, owner_id, seq, name, status, start_date, description, team, resources, tasks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, ownerID, now.UnixNano(), p.Name, string(p.Status), p.StartDate, p.Description,
		team, resources, tasks,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// UpdateProject replaces a project document in place
func (s *Store) UpdateProject(ctx context.Context, ownerID string, p model.Project) (model.Project, error) {
	p.UpdatedAt = time.Now().UTC()

	team, resources, tasks, err := marshalCollections(p)
	if err != nil {
		return model.Project{}, err
	}

	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE projects SET name = ?, status = ?, start_date = ?, description = ?,
			team = ?, resources = ?, tasks = ?, updated_at = ?
		WHERE owner_id = ? AND id = ?`),
		p.Name, string(p.Status), p.StartDate, p.Description,
		team, resources, tasks, p.UpdatedAt.Format(time.RFC3339),
		ownerID, p.ID,
	)
	if err != nil {
		return model.Project{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Project{}, sql.ErrNoRows
	}
	return p, nil
}

// DeleteProject removes a project owned by ownerID
func (s *Store) DeleteProject(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		DELETE FROM projects WHERE owner_id = ? AND id = ?`),
		ownerID, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func marshalCollections(p model.Project) (team, resources, tasks string, err error) {
	t, err := json.Marshal(p.Team)
	if err != nil {
		return "", "", "", err
	}
	r, err := json.Marshal(p.Resources)
	if err != nil {
		return "", "", "", err
	}
	k, err := json.Marshal(p.Tasks)
	if err != nil {
		return "", "", "", err
	}
	return string(t), string(r), string(k), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	var status, team, resources, tasks, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &status, &p.StartDate, &p.Description,
		&team, &resources, &tasks, &createdAt, &updatedAt)
	if err != nil {
		return model.Project{}, err
	}

	p.Status = model.ProjectStatus(status)
	if err := json.Unmarshal([]byte(team), &p.Team); err != nil {
		return model.Project{}, err
	}
	if err := json.Unmarshal([]byte(resources), &p.Resources); err != nil {
		return model.Project{}, err
	}
	if err := json.Unmarshal([]byte(tasks), &p.Tasks); err != nil {
		return model.Project{}, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}
