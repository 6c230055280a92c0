package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewTaskDefaults(t *testing.T) {
	task, err := NewTask("Write report")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.ID == "" {
		t.Error("expected a generated id")
	}
	if task.Status != TaskTodo {
		t.Errorf("status = %q, want %q", task.Status, TaskTodo)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("priority = %q, want %q", task.Priority, PriorityMedium)
	}
	if task.Weight != MinWeight {
		t.Errorf("weight = %d, want %d", task.Weight, MinWeight)
	}
}

func TestNewTaskRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := NewTask(title); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("NewTask(%q) err = %v, want ErrEmptyTitle", title, err)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	valid := Task{ID: "t1", Title: "x", Status: TaskReview, Priority: PriorityHigh, Weight: 5}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{"valid", func(*Task) {}, false},
		{"blank title", func(tk *Task) { tk.Title = "  " }, true},
		{"bad status", func(tk *Task) { tk.Status = "archived" }, true},
		{"bad priority", func(tk *Task) { tk.Priority = "urgent" }, true},
		{"weight too low", func(tk *Task) { tk.Weight = 0 }, true},
		{"weight too high", func(tk *Task) { tk.Weight = 11 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := valid
			tt.mutate(&tk)
			err := tk.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	task := Task{Title: "x", Status: TaskTodo, DueDate: "2024-06-10"}
	if !task.IsOverdue(now) {
		t.Error("expected past due date to be overdue")
	}

	task.Status = TaskDone
	if task.IsOverdue(now) {
		t.Error("done tasks are never overdue")
	}

	task = Task{Title: "x", Status: TaskTodo, DueDate: "2024-06-15"}
	if task.IsOverdue(now) {
		t.Error("due today is not overdue")
	}

	task.DueDate = ""
	if task.IsOverdue(now) {
		t.Error("no due date is not overdue")
	}
}

func TestApplyTaskPatch(t *testing.T) {
	orig := Task{
		ID:       "t1",
		Title:    "Original",
		Status:   TaskTodo,
		Priority: PriorityLow,
		Weight:   2,
	}

	status := TaskDone
	title := "Renamed"
	patched := ApplyTaskPatch(orig, TaskPatch{Title: &title, Status: &status})

	if patched.Title != "Renamed" || patched.Status != TaskDone {
		t.Errorf("patched = %+v, want title Renamed status done", patched)
	}
	if patched.Priority != PriorityLow || patched.Weight != 2 {
		t.Error("unset patch fields must be left untouched")
	}
	if orig.Title != "Original" {
		t.Error("ApplyTaskPatch must not mutate its input")
	}
}

func TestApplyTaskPatchCopiesAssignees(t *testing.T) {
	assignees := []string{"u1", "u2"}
	patched := ApplyTaskPatch(Task{Title: "x"}, TaskPatch{AssignedTo: &assignees})

	assignees[0] = "changed"
	if patched.AssignedTo[0] != "u1" {
		t.Error("patched assignees must not alias the patch slice")
	}
}
