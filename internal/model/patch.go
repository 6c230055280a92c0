package model

// Patch types carry named optional fields. A nil field means "leave as is".
// All merging goes through the Apply functions so callers never build
// ad hoc partial maps.

// ProjectPatch is a partial update to a project's own fields
type ProjectPatch struct {
	Name        *string
	Status      *ProjectStatus
	StartDate   *string
	Description *string
}

// ApplyProjectPatch merges patch into a copy of p and returns it
func ApplyProjectPatch(p Project, patch ProjectPatch) Project {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	return p
}

// TaskPatch is a partial update to a task
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *string
	AssignedTo  *[]string
	Weight      *int
}

// ApplyTaskPatch merges patch into a copy of t and returns it
func ApplyTaskPatch(t Task, patch TaskPatch) Task {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.AssignedTo != nil {
		t.AssignedTo = append([]string(nil), (*patch.AssignedTo)...)
	}
	if patch.Weight != nil {
		t.Weight = *patch.Weight
	}
	return t
}
