package model

import "time"

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not-started"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectOnHold     ProjectStatus = "on-hold"
	ProjectCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is a known project status
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectNotStarted, ProjectInProgress, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

// Project is a board with its team, resources and tasks
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Status      ProjectStatus `json:"status"`
	StartDate   string        `json:"start_date"`
	Description string        `json:"description"`
	Team        []TeamMember  `json:"team"`
	Resources   []Resource    `json:"resources"`
	Tasks       []Task        `json:"tasks"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TeamMember is a user attached to a project. Membership is unique by email.
type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResourceType classifies a project resource link
type ResourceType string

const (
	ResourceDrive    ResourceType = "drive"
	ResourceFolder   ResourceType = "folder"
	ResourceDocument ResourceType = "document"
	ResourceLink     ResourceType = "link"
	ResourceOther    ResourceType = "other"
)

// Valid reports whether t is a known resource type
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceDrive, ResourceFolder, ResourceDocument, ResourceLink, ResourceOther:
		return true
	}
	return false
}

// Resource is an external link attached to a project
type Resource struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        ResourceType `json:"type"`
	URL         string       `json:"url"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CreatedBy   string       `json:"created_by"`
}

// HasMember reports whether the project team already contains email
func (p *Project) HasMember(email string) bool {
	for _, m := range p.Team {
		if m.Email == email {
			return true
		}
	}
	return false
}

// TaskByID returns the task with the given id, or nil
func (p *Project) TaskByID(id string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the project. The stores snapshot projects
// before optimistic mutation so a failed persist can be rolled back.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Team = append([]TeamMember(nil), p.Team...)
	cp.Resources = append([]Resource(nil), p.Resources...)
	cp.Tasks = make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		cp.Tasks[i] = t
		cp.Tasks[i].AssignedTo = append([]string(nil), t.AssignedTo...)
	}
	return &cp
}
