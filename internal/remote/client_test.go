package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/javiermolinar/timetabler/internal/persist"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, 12)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSave(t *testing.T) {
	var got persist.SaveRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/timetables/autosave" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("user_id") != "12" {
			t.Errorf("user_id = %q", r.URL.Query().Get("user_id"))
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
			t.Errorf("X-Request-ID is not a uuid: %q", r.Header.Get("X-Request-ID"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(persist.Response{
			Success: true,
			Message: "Timetable auto-saved successfully",
			Data:    &persist.ResponseData{ID: "tt-1"},
		})
	}))

	resp, err := c.Save(context.Background(), persist.SaveRequest{Name: "Week A", SubjectID: 4})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.ID != "tt-1" {
		t.Errorf("response = %+v", resp)
	}
	if got.Name != "Week A" || got.SubjectID != 4 {
		t.Errorf("server received %+v", got)
	}
}

func TestLoad_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Timetable not found"}`, http.StatusNotFound)
	}))

	_, err := c.Load(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_ServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Load(context.Background(), "x")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected a server error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	var path string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		_, _ = w.Write([]byte(`{"success":true,"message":"Timetable deleted successfully"}`))
	}))

	if err := c.Delete(context.Background(), "tt 9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if path != "DELETE /api/timetables/tt 9" {
		t.Errorf("path = %q", path)
	}
}

func TestList_FiltersSubject(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"total":3,"data":[
			{"id":"a","name":"Maths A","subject_id":1,"slots":[{},{}]},
			{"id":"b","name":"Physics","subject_id":2,"slots":[]},
			{"id":"c","name":"Maths B","subject_id":1}
		]}`))
	}))

	got, err := c.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[0].Slots != 2 || got[1].ID != "c" {
		t.Errorf("summaries = %+v", got)
	}

	all, _ := c.List(context.Background(), 0)
	if len(all) != 3 {
		t.Errorf("unfiltered = %d, want 3", len(all))
	}
}

func TestNew_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8000", "://bad"} {
		if _, err := New(u, 1); err == nil {
			t.Errorf("New(%q) should fail", u)
		}
	}
}

func TestClient_ImplementsRemote(t *testing.T) {
	var _ persist.Remote = (*Client)(nil)
}
