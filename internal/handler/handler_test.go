package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/store"
)

// testMux wires the handlers under test onto a mux so path parameters
// resolve the same way they do in the real router.
func testMux(st *store.Store) *http.ServeMux {
	logger := slog.Default()
	profileH := NewProfileHandler(st, nil, logger)
	eventH := NewEventHandler(st, nil, logger)
	choreH := NewChoreHandler(st, nil, logger)
	listH := NewListHandler(st, nil, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/profiles", profileH.List)
	mux.HandleFunc("POST /api/profiles", profileH.Create)
	mux.HandleFunc("PUT /api/profiles/{id}", profileH.Update)
	mux.HandleFunc("DELETE /api/profiles/{id}", profileH.Delete)
	mux.HandleFunc("POST /api/profiles/{id}/pin", profileH.SetPIN)
	mux.HandleFunc("POST /api/profiles/{id}/pin/verify", profileH.VerifyPIN)
	mux.HandleFunc("POST /api/events", eventH.Create)
	mux.HandleFunc("GET /api/calendar", eventH.Calendar)
	mux.HandleFunc("POST /api/chores", choreH.Create)
	mux.HandleFunc("POST /api/chores/{id}/complete", choreH.Complete)
	mux.HandleFunc("POST /api/chores/{id}/approve", choreH.Approve)
	mux.HandleFunc("POST /api/lists", listH.Create)
	mux.HandleFunc("POST /api/lists/{list_id}/items", listH.CreateItem)
	mux.HandleFunc("POST /api/lists/{list_id}/items/{id}/check", listH.ToggleItem)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestProfileCreateValidation(t *testing.T) {
	mux := testMux(store.New(store.Snapshot{}))

	rec := doJSON(t, mux, "POST", "/api/profiles", map[string]any{"name": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank name: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, mux, "POST", "/api/profiles", map[string]any{"name": "Maya", "role": "wizard"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad role: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, mux, "POST", "/api/profiles", map[string]any{"name": "Maya", "role": "child", "color": "#33aa77"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid create: status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	p := decode[model.Profile](t, rec)
	if p.ID == "" || p.Name != "Maya" || p.Role != model.RoleChild {
		t.Errorf("profile = %+v", p)
	}
}

func TestProfilePINLifecycle(t *testing.T) {
	st := store.New(store.Snapshot{})
	p := st.AddProfile(model.Profile{Name: "Dana", Role: model.RoleParent})
	mux := testMux(st)

	rec := doJSON(t, mux, "POST", "/api/profiles/"+p.ID+"/pin", map[string]any{"pin": "12ab"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-digit pin: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, mux, "POST", "/api/profiles/"+p.ID+"/pin", map[string]any{"pin": "4812"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set pin: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, "POST", "/api/profiles/"+p.ID+"/pin/verify", map[string]any{"pin": "0000"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong pin: status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, mux, "POST", "/api/profiles/"+p.ID+"/pin/verify", map[string]any{"pin": "4812"})
	if rec.Code != http.StatusOK {
		t.Errorf("correct pin: status = %d, want 200", rec.Code)
	}
}

func TestEventCreateAndCalendar(t *testing.T) {
	st := store.New(store.Snapshot{})
	p := st.AddProfile(model.Profile{Name: "Maya"})
	mux := testMux(st)

	// Rejects an unknown attendee.
	rec := doJSON(t, mux, "POST", "/api/events", map[string]any{
		"title":       "Swim practice",
		"start":       "2024-03-04T16:00:00Z",
		"end":         "2024-03-04T17:00:00Z",
		"profile_ids": []string{"profile-nope"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown attendee: status = %d, want 400", rec.Code)
	}

	// Rejects end before start.
	rec = doJSON(t, mux, "POST", "/api/events", map[string]any{
		"title": "Backwards",
		"start": "2024-03-04T16:00:00Z",
		"end":   "2024-03-04T15:00:00Z",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("inverted range: status = %d, want 400", rec.Code)
	}

	// Weekly practice, expanded by the calendar query.
	rec = doJSON(t, mux, "POST", "/api/events", map[string]any{
		"title":       "Swim practice",
		"start":       "2024-03-04T16:00:00Z",
		"end":         "2024-03-04T17:00:00Z",
		"profile_ids": []string{p.ID},
		"recurrence":  map[string]any{"freq": "WEEKLY", "interval": 1, "byWeekday": []int{1}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, "GET", "/api/calendar?start=2024-03-01&end=2024-03-31", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("calendar: status = %d", rec.Code)
	}
	cal := decode[calendarResponse](t, rec)
	if len(cal.Occurrences) != 4 {
		t.Fatalf("expected 4 Mondays in range, got %d", len(cal.Occurrences))
	}
	if cal.Occurrences[0].Date != "2024-03-04" {
		t.Errorf("first occurrence = %s", cal.Occurrences[0].Date)
	}

	rec = doJSON(t, mux, "GET", "/api/calendar?start=2024-03-31&end=2024-03-01", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("inverted calendar range: status = %d, want 400", rec.Code)
	}
}

func TestChoreCompleteAndApprove(t *testing.T) {
	st := store.New(store.Snapshot{})
	kid := st.AddProfile(model.Profile{Name: "Maya"})
	parent := st.AddProfile(model.Profile{Name: "Dana", Role: model.RoleParent})
	mux := testMux(st)

	rec := doJSON(t, mux, "POST", "/api/chores", map[string]any{
		"title":             "Dishes",
		"profile_ids":       []string{kid.ID},
		"start_date":        "2024-02-01",
		"reward_stars":      5,
		"requires_approval": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create chore: status = %d, body %s", rec.Code, rec.Body.String())
	}
	c := decode[model.Chore](t, rec)

	rec = doJSON(t, mux, "POST", "/api/chores/"+c.ID+"/complete", map[string]any{
		"profile_id": kid.ID,
		"date":       "2024-02-01",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: status = %d, body %s", rec.Code, rec.Body.String())
	}
	c = decode[model.Chore](t, rec)
	if len(c.CompletedBy) != 1 || c.CompletedBy[0].Status != model.CompletionPendingApproval {
		t.Fatalf("completion = %+v", c.CompletedBy)
	}

	rec = doJSON(t, mux, "POST", "/api/chores/"+c.ID+"/approve", map[string]any{
		"profile_id": kid.ID,
		"date":       "2024-02-01",
		"by":         parent.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status = %d, body %s", rec.Code, rec.Body.String())
	}
	c = decode[model.Chore](t, rec)
	if c.CompletedBy[0].Status != model.CompletionApproved {
		t.Errorf("status after approve = %s", c.CompletedBy[0].Status)
	}
	if c.CompletedBy[0].ApprovedBy != parent.ID {
		t.Errorf("approved by = %s", c.CompletedBy[0].ApprovedBy)
	}

	// Approving a date nobody completed is a 404.
	rec = doJSON(t, mux, "POST", "/api/chores/"+c.ID+"/approve", map[string]any{
		"profile_id": kid.ID,
		"date":       "2024-02-02",
		"by":         parent.ID,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("approve missing completion: status = %d, want 404", rec.Code)
	}
}

func TestListItemFlow(t *testing.T) {
	st := store.New(store.Snapshot{})
	mux := testMux(st)

	rec := doJSON(t, mux, "POST", "/api/lists", map[string]any{"name": "Groceries", "kind": "shopping"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create list: status = %d", rec.Code)
	}
	l := decode[model.List](t, rec)

	rec = doJSON(t, mux, "POST", "/api/lists/"+l.ID+"/items", map[string]any{"name": "Milk", "quantity": "2"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item: status = %d, body %s", rec.Code, rec.Body.String())
	}
	item := decode[model.ListItem](t, rec)

	// Adding to a missing list is a 404.
	rec = doJSON(t, mux, "POST", "/api/lists/list-nope/items", map[string]any{"name": "Eggs"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing list: status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, mux, "POST", "/api/lists/"+l.ID+"/items/"+item.ID+"/check", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: status = %d", rec.Code)
	}
	item = decode[model.ListItem](t, rec)
	if !item.Checked {
		t.Error("expected item checked after toggle")
	}

	got, err := st.GetList(l.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if got.ItemCount != 1 {
		t.Errorf("item count = %d, want 1", got.ItemCount)
	}
}
