package model

import "testing"

func TestHasMember(t *testing.T) {
	p := Project{Team: []TeamMember{
		{ID: "m1", Name: "Ana", Email: "ana@example.com"},
		{ID: "m2", Name: "Bo", Email: "bo@example.com"},
	}}

	if !p.HasMember("ana@example.com") {
		t.Error("expected existing email to be found")
	}
	if p.HasMember("carl@example.com") {
		t.Error("unexpected member match")
	}
}

func TestTaskByID(t *testing.T) {
	p := Project{Tasks: []Task{{ID: "t1", Title: "a"}, {ID: "t2", Title: "b"}}}

	if got := p.TaskByID("t2"); got == nil || got.Title != "b" {
		t.Errorf("TaskByID(t2) = %v, want task b", got)
	}
	if p.TaskByID("missing") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := &Project{
		ID:        "p1",
		Name:      "Alpha",
		Team:      []TeamMember{{ID: "m1", Email: "ana@example.com"}},
		Resources: []Resource{{ID: "r1", Type: ResourceLink}},
		Tasks:     []Task{{ID: "t1", Title: "a", AssignedTo: []string{"u1"}}},
	}

	cp := p.Clone()
	cp.Tasks[0].Title = "changed"
	cp.Tasks[0].AssignedTo[0] = "u2"
	cp.Team[0].Email = "other@example.com"
	cp.Resources[0].Type = ResourceDrive

	if p.Tasks[0].Title != "a" || p.Tasks[0].AssignedTo[0] != "u1" {
		t.Error("clone shares task storage with original")
	}
	if p.Team[0].Email != "ana@example.com" {
		t.Error("clone shares team storage with original")
	}
	if p.Resources[0].Type != ResourceLink {
		t.Error("clone shares resource storage with original")
	}
}

func TestStatusValidation(t *testing.T) {
	for _, s := range []ProjectStatus{ProjectNotStarted, ProjectInProgress, ProjectOnHold, ProjectCompleted} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if ProjectStatus("cancelled").Valid() {
		t.Error("unknown project status accepted")
	}
	if ResourceType("wiki").Valid() {
		t.Error("unknown resource type accepted")
	}
}

func TestApplyProjectPatch(t *testing.T) {
	p := Project{ID: "p1", Name: "Alpha", Status: ProjectNotStarted, Description: "x"}

	status := ProjectCompleted
	patched := ApplyProjectPatch(p, ProjectPatch{Status: &status})

	if patched.Status != ProjectCompleted {
		t.Errorf("status = %q, want completed", patched.Status)
	}
	if patched.Name != "Alpha" || patched.Description != "x" {
		t.Error("unset fields must be preserved")
	}
}
