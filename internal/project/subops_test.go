package project

import (
	"context"
	"errors"
	"testing"

	"github.com/taskdeck/taskdeck/internal/model"
)

// withCurrent creates a project on the backend and selects it
func withCurrent(t *testing.T) (*Store, *fakeBackend) {
	t.Helper()
	store, backend := newTestStore(t)
	p, err := store.Create(context.Background(), Draft{Name: "Alpha"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.SetCurrent(*p)
	return store, backend
}

func TestUpsertTaskInsertsThenReplaces(t *testing.T) {
	store, _ := withCurrent(t)
	ctx := context.Background()

	task, err := model.NewTask("Design schema")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := store.UpsertTask(ctx, task); err != nil {
		t.Fatalf("upsert insert: %v", err)
	}

	cur := store.Current()
	if len(cur.Tasks) != 1 || cur.Tasks[0].Title != "Design schema" {
		t.Fatalf("tasks = %+v", cur.Tasks)
	}

	// Same id again replaces in place
	task.Status = model.TaskDone
	if err := store.UpsertTask(ctx, task); err != nil {
		t.Fatalf("upsert replace: %v", err)
	}

	cur = store.Current()
	if len(cur.Tasks) != 1 {
		t.Fatalf("task count = %d, want 1 after replace", len(cur.Tasks))
	}
	if cur.Tasks[0].Status != model.TaskDone {
		t.Errorf("status = %q, want done", cur.Tasks[0].Status)
	}
}

func TestUpsertTaskRejectsWhitespaceTitle(t *testing.T) {
	store, backend := withCurrent(t)
	before := backend.requestCount()

	err := store.UpsertTask(context.Background(), model.Task{ID: "t1", Title: "   \t"})
	if !errors.Is(err, model.ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	if backend.requestCount() != before {
		t.Error("rejected upsert must not issue a network call")
	}
	if len(store.Current().Tasks) != 0 {
		t.Error("task list must be unchanged")
	}
}

func TestUpsertTaskGeneratesID(t *testing.T) {
	store, _ := withCurrent(t)

	if err := store.UpsertTask(context.Background(), model.Task{Title: "x", Status: model.TaskTodo, Priority: model.PriorityLow, Weight: 1}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if store.Current().Tasks[0].ID == "" {
		t.Error("expected a client-generated task id")
	}
}

func TestUpsertTaskWithoutCurrent(t *testing.T) {
	store, _ := newTestStore(t)
	err := store.UpsertTask(context.Background(), model.Task{ID: "t1", Title: "x"})
	if !errors.Is(err, ErrNoCurrent) {
		t.Errorf("err = %v, want ErrNoCurrent", err)
	}
}

func TestPatchTask(t *testing.T) {
	store, _ := withCurrent(t)
	ctx := context.Background()

	task, _ := model.NewTask("Review PR")
	if err := store.UpsertTask(ctx, task); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	status := model.TaskReview
	weight := 7
	if err := store.PatchTask(ctx, task.ID, model.TaskPatch{Status: &status, Weight: &weight}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	got := store.Current().TaskByID(task.ID)
	if got.Status != model.TaskReview || got.Weight != 7 {
		t.Errorf("task = %+v", got)
	}
	if got.Title != "Review PR" {
		t.Error("unpatched fields must survive")
	}

	if err := store.PatchTask(ctx, "missing", model.TaskPatch{Status: &status}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	store, _ := withCurrent(t)
	ctx := context.Background()

	task, _ := model.NewTask("Temp")
	_ = store.UpsertTask(ctx, task)

	if err := store.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.Current().Tasks) != 0 {
		t.Error("expected task removed")
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	store, backend := withCurrent(t)
	ctx := context.Background()

	task, _ := model.NewTask("Will survive")
	if err := store.UpsertTask(ctx, task); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	backend.fail(true)
	second, _ := model.NewTask("Will be rolled back")
	if err := store.UpsertTask(ctx, second); err == nil {
		t.Fatal("expected persist failure")
	}

	cur := store.Current()
	if len(cur.Tasks) != 1 || cur.Tasks[0].Title != "Will survive" {
		t.Errorf("tasks after rollback = %+v", cur.Tasks)
	}
	if store.Err() == nil {
		t.Error("expected error recorded")
	}
	if store.PendingWrites() != 0 {
		t.Error("pending-write table must be drained")
	}

	// Once the backend recovers the same mutation goes through
	backend.fail(false)
	if err := store.UpsertTask(ctx, second); err != nil {
		t.Fatalf("retry upsert: %v", err)
	}
	if len(store.Current().Tasks) != 2 {
		t.Error("expected both tasks after recovery")
	}
}

func TestAddTeamMemberRejectsDuplicateEmail(t *testing.T) {
	store, backend := withCurrent(t)
	ctx := context.Background()

	ana := model.TeamMember{ID: "m1", Name: "Ana", Email: "ana@example.com"}
	if err := store.AddTeamMember(ctx, ana); err != nil {
		t.Fatalf("add member: %v", err)
	}

	before := backend.requestCount()
	err := store.AddTeamMember(ctx, model.TeamMember{ID: "m2", Name: "Ana B", Email: "ana@example.com"})
	if !errors.Is(err, ErrDuplicateMember) {
		t.Fatalf("err = %v, want ErrDuplicateMember", err)
	}
	if backend.requestCount() != before {
		t.Error("duplicate add must be rejected before the network")
	}
	if len(store.Current().Team) != 1 {
		t.Error("team must be unchanged")
	}
}

func TestRemoveTeamMember(t *testing.T) {
	store, _ := withCurrent(t)
	ctx := context.Background()

	_ = store.AddTeamMember(ctx, model.TeamMember{ID: "m1", Email: "ana@example.com"})
	_ = store.AddTeamMember(ctx, model.TeamMember{ID: "m2", Email: "bo@example.com"})

	if err := store.RemoveTeamMember(ctx, "m1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	team := store.Current().Team
	if len(team) != 1 || team[0].ID != "m2" {
		t.Errorf("team = %+v", team)
	}
}

func TestAddResourceStampsMetadata(t *testing.T) {
	store, _ := withCurrent(t)

	err := store.AddResource(context.Background(), model.Resource{
		Name: "Design doc",
		URL:  "https://docs.example.com/design",
	}, "u1")
	if err != nil {
		t.Fatalf("add resource: %v", err)
	}

	res := store.Current().Resources
	if len(res) != 1 {
		t.Fatalf("resource count = %d", len(res))
	}
	if res[0].ID == "" {
		t.Error("expected generated resource id")
	}
	if res[0].CreatedAt.IsZero() {
		t.Error("expected createdAt stamp")
	}
	if res[0].CreatedBy != "u1" {
		t.Errorf("createdBy = %q", res[0].CreatedBy)
	}
	if res[0].Type != model.ResourceLink {
		t.Errorf("type = %q, want default link", res[0].Type)
	}
}

func TestDeleteResource(t *testing.T) {
	store, _ := withCurrent(t)
	ctx := context.Background()

	_ = store.AddResource(ctx, model.Resource{ID: "r1", Name: "a", URL: "u"}, "u1")
	if err := store.DeleteResource(ctx, "r1"); err != nil {
		t.Fatalf("delete resource: %v", err)
	}
	if len(store.Current().Resources) != 0 {
		t.Error("expected resource removed")
	}
}
