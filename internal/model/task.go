package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is a kanban column
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// Valid reports whether s is a known task status
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskDone:
		return true
	}
	return false
}

// TaskPriority levels
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// Valid reports whether p is a known priority
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Weight bounds for tasks
const (
	MinWeight = 1
	MaxWeight = 10
)

// ErrEmptyTitle is returned for tasks whose title is empty or whitespace only
var ErrEmptyTitle = errors.New("task title must not be empty")

// Task is a single tracked work item on a project board
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     string       `json:"due_date"`
	AssignedTo  []string     `json:"assigned_to"`
	Weight      int          `json:"weight"`
}

// NewTask creates a task with a client-generated id and defaults
func NewTask(title string) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	return Task{
		ID:         uuid.New().String(),
		Title:      title,
		Status:     TaskTodo,
		Priority:   PriorityMedium,
		AssignedTo: []string{},
		Weight:     MinWeight,
	}, nil
}

// Validate checks the task's required fields and enum values
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.Valid() {
		return errors.New("invalid task status: " + string(t.Status))
	}
	if !t.Priority.Valid() {
		return errors.New("invalid task priority: " + string(t.Priority))
	}
	if t.Weight < MinWeight || t.Weight > MaxWeight {
		return errors.New("task weight out of range")
	}
	return nil
}

// IsOverdue reports whether the task has a due date in the past and is not done
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == "" || t.Status == TaskDone {
		return false
	}
	due, err := time.Parse("2006-01-02", t.DueDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}
