package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/model"
)

// fakeBackend is an in-memory stand-in for the projects REST surface
type fakeBackend struct {
	mu       sync.Mutex
	projects []model.Project
	nextID   int
	requests int
	failAll  bool
}

func (b *fakeBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

func (b *fakeBackend) fail(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failAll = on
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		if b.failAll {
			writeErr(w, "backend down")
			return
		}
		_ = json.NewEncoder(w).Encode(b.projects)
	})

	mux.HandleFunc("POST /projects", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		if b.failAll {
			writeErr(w, "backend down")
			return
		}
		var p model.Project
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.nextID++
		p.ID = fmt.Sprintf("srv-%d", b.nextID)
		p.CreatedAt = time.Now().UTC()
		b.projects = append(b.projects, p)
		_ = json.NewEncoder(w).Encode(p)
	})

	mux.HandleFunc("PUT /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		if b.failAll {
			writeErr(w, "backend down")
			return
		}
		id := r.PathValue("id")
		var p model.Project
		_ = json.NewDecoder(r.Body).Decode(&p)
		p.ID = id
		p.UpdatedAt = time.Now().UTC()
		for i := range b.projects {
			if b.projects[i].ID == id {
				b.projects[i] = p
				_ = json.NewEncoder(w).Encode(p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "project not found"})
	})

	mux.HandleFunc("DELETE /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests++
		if b.failAll {
			writeErr(w, "backend down")
			return
		}
		id := r.PathValue("id")
		kept := b.projects[:0]
		for _, p := range b.projects {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		b.projects = kept
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func writeErr(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func newTestStore(t *testing.T) (*Store, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewStore(api.NewClient(srv.URL, nil)), backend
}

func TestCreateThenFetchAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, Draft{Name: "Alpha", StartDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if created.Status != model.ProjectNotStarted {
		t.Errorf("status = %q, want default not-started", created.Status)
	}

	if err := store.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("list length = %d, want 1", len(items))
	}
	if items[0].ID != created.ID {
		t.Errorf("fetched id = %q, want %q", items[0].ID, created.ID)
	}
}

func TestCreateRequiresName(t *testing.T) {
	store, backend := newTestStore(t)

	if _, err := store.Create(context.Background(), Draft{Name: "   "}); !errors.Is(err, ErrNameRequired) {
		t.Errorf("err = %v, want ErrNameRequired", err)
	}
	if backend.requestCount() != 0 {
		t.Error("validation failure must not reach the network")
	}
}

func TestAlphaScenario(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, Draft{
		Name:        "Alpha",
		Status:      model.ProjectNotStarted,
		StartDate:   "2024-01-01",
		Description: "x",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(store.Items()) != 1 {
		t.Fatalf("list length = %d, want 1", len(store.Items()))
	}
	if store.Current() != nil {
		t.Fatal("current must be unset after create")
	}

	store.SetCurrent(*created)
	if cur := store.Current(); cur == nil || cur.Name != "Alpha" {
		t.Fatalf("current = %+v, want Alpha", cur)
	}

	status := model.ProjectCompleted
	if err := store.Update(ctx, created.ID, model.ProjectPatch{Status: &status}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := store.Items()[0].Status; got != model.ProjectCompleted {
		t.Errorf("list entry status = %q, want completed", got)
	}
	if got := store.Current().Status; got != model.ProjectCompleted {
		t.Errorf("current status = %q, want completed", got)
	}
}

func TestFetchFailurePreservesList(t *testing.T) {
	store, backend := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, Draft{Name: "Alpha"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.FetchAll(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	backend.fail(true)
	if err := store.FetchAll(ctx); err == nil {
		t.Fatal("expected fetch failure")
	}

	if len(store.Items()) != 1 {
		t.Error("failed fetch must preserve the previous list")
	}
	if store.Err() == nil {
		t.Error("expected error to be recorded")
	}
}

func TestDeleteClearsCurrentOnlyWhenMatching(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := store.Create(ctx, Draft{Name: "Alpha"})
	b, _ := store.Create(ctx, Draft{Name: "Beta"})

	store.SetCurrent(*a)
	if err := store.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if cur := store.Current(); cur == nil || cur.ID != a.ID {
		t.Error("deleting a non-current project must leave current unchanged")
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.Current() != nil {
		t.Error("deleting the current project must clear current")
	}
	if len(store.Items()) != 0 {
		t.Errorf("list length = %d, want 0", len(store.Items()))
	}
}

func TestClearCurrent(t *testing.T) {
	store, _ := newTestStore(t)

	p, _ := store.Create(context.Background(), Draft{Name: "Alpha"})
	store.SetCurrent(*p)
	store.ClearCurrent()
	if store.Current() != nil {
		t.Error("expected nil current after clear")
	}
}

func TestCurrentIsACopy(t *testing.T) {
	store, _ := newTestStore(t)

	p, _ := store.Create(context.Background(), Draft{Name: "Alpha"})
	store.SetCurrent(*p)

	cur := store.Current()
	cur.Name = "mutated"
	if store.Current().Name != "Alpha" {
		t.Error("Current must return a copy, not shared state")
	}
}
