package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/timetabler/internal/config"
	"github.com/javiermolinar/timetabler/internal/persist"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "timetabler.db")
	cfg.Subject = config.SubjectConfig{ID: 7, Name: "Chemistry", Code: "CHE"}
	return cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	DisableColor()
	app := NewApp(cfg)
	var out, errOut bytes.Buffer
	app.SetOutput(&out, &errOut)
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	out, err := run(t, cfg, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func TestVersion(t *testing.T) {
	out := mustRun(t, testConfig(t), "version")
	if !strings.HasPrefix(out, "timetabler dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestAdd_PersistsAcrossRuns(t *testing.T) {
	cfg := testConfig(t)

	out := mustRun(t, cfg, "add", "mon", "8:20", "--notes", "lab")
	if !strings.Contains(out, "Added lesson at MON-8:20") {
		t.Errorf("add output = %q", out)
	}

	out = mustRun(t, cfg, "show")
	if !strings.Contains(out, "CHE") {
		t.Errorf("show output missing lesson:\n%s", out)
	}
	if !strings.Contains(out, "1 sessions") {
		t.Errorf("show output missing headline:\n%s", out)
	}
}

func TestAdd_UnknownCell(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "add", "mon", "8:15"); err == nil {
		t.Error("expected error for an off-grid time")
	}
	if _, err := run(t, cfg, "add", "sun", "8:20"); err == nil {
		t.Error("expected error for an unknown day")
	}
}

func TestAdd_NeedsSubject(t *testing.T) {
	cfg := testConfig(t)
	cfg.Subject = config.SubjectConfig{}

	if _, err := run(t, cfg, "add", "mon", "8:20"); err == nil {
		t.Fatal("expected error without a subject")
	}

	mustRun(t, cfg, "subject", "--id=3", "--name=Physics", "--code=PHY")
	out := mustRun(t, cfg, "add", "mon", "8:20")
	if !strings.Contains(out, "Added") {
		t.Errorf("add output = %q", out)
	}
	if out := mustRun(t, cfg, "show"); !strings.Contains(out, "PHY") {
		t.Errorf("show output missing PHY:\n%s", out)
	}
}

func TestPairAndRemove(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "add", "tue", "8:20")
	mustRun(t, cfg, "add", "tue", "9:00")

	out := mustRun(t, cfg, "pair", "tue", "8:20")
	if !strings.Contains(out, "Paired TUE-8:20 with TUE-9:00") {
		t.Errorf("pair output = %q", out)
	}
	out = mustRun(t, cfg, "show")
	if !strings.Contains(out, "CHE ┐") || !strings.Contains(out, "CHE ┘") {
		t.Errorf("show output missing double lesson:\n%s", out)
	}

	mustRun(t, cfg, "remove", "tue", "9:00")
	out = mustRun(t, cfg, "show")
	if strings.Contains(out, "CHE") {
		t.Errorf("removing half a double should remove both:\n%s", out)
	}

	out = mustRun(t, cfg, "remove", "tue", "9:00")
	if !strings.Contains(out, "Nothing scheduled") {
		t.Errorf("remove output = %q", out)
	}
}

func TestPair_NotAdjacent(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "add", "wed", "8:20")
	mustRun(t, cfg, "add", "wed", "10:20")
	if _, err := run(t, cfg, "pair", "wed", "8:20", "10:20"); err == nil {
		t.Error("expected error pairing non-adjacent periods")
	}
}

func TestToggleAndClear(t *testing.T) {
	cfg := testConfig(t)

	if out := mustRun(t, cfg, "toggle", "fri", "16:20"); !strings.Contains(out, "Added") {
		t.Errorf("toggle output = %q", out)
	}
	out := mustRun(t, cfg, "analyze")
	if !strings.Contains(out, "1 evening") {
		t.Errorf("analyze output missing evening count:\n%s", out)
	}
	if out := mustRun(t, cfg, "toggle", "fri", "16:20"); !strings.Contains(out, "Removed") {
		t.Errorf("toggle output = %q", out)
	}

	mustRun(t, cfg, "add", "mon", "8:20")
	mustRun(t, cfg, "clear")
	if out := mustRun(t, cfg, "show"); !strings.Contains(out, "0 sessions") {
		t.Errorf("show after clear:\n%s", out)
	}
}

func TestNotes(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "notes", "mon", "8:20", "lab"); err == nil {
		t.Error("expected error setting notes on an empty cell")
	}
	mustRun(t, cfg, "add", "mon", "8:20")
	if out := mustRun(t, cfg, "notes", "mon", "8:20", "lab"); !strings.Contains(out, "Updated notes") {
		t.Errorf("notes output = %q", out)
	}
}

func TestConflicts_None(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "add", "mon", "8:20")
	if out := mustRun(t, cfg, "conflicts"); !strings.Contains(out, "No conflicts.") {
		t.Errorf("conflicts output = %q", out)
	}
}

func TestTemplate(t *testing.T) {
	cfg := testConfig(t)

	out := mustRun(t, cfg, "template", "list")
	for _, id := range []string{"standard-mwf", "double-power", "intensive-burst"} {
		if !strings.Contains(out, id) {
			t.Errorf("template list missing %s", id)
		}
	}

	mustRun(t, cfg, "template", "apply", "double-power")
	out = mustRun(t, cfg, "analyze")
	if !strings.Contains(out, "Concentrated") {
		t.Errorf("analyze output missing pattern:\n%s", out)
	}
	if !strings.Contains(out, "2 double") {
		t.Errorf("analyze output missing doubles:\n%s", out)
	}

	if _, err := run(t, cfg, "template", "apply", "nope"); err == nil {
		t.Error("expected error for an unknown template")
	}
}

func TestExport(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "add", "thu", "16:20")

	out := mustRun(t, cfg, "export")
	if !strings.HasPrefix(out, "My Timetable\n\n") {
		t.Errorf("export should start with the name, got %q", out)
	}
	if !strings.Contains(out, "16:20 *") || !strings.Contains(out, "double lesson") {
		t.Errorf("export output:\n%s", out)
	}
}

func TestRemoteCommands_NoRemote(t *testing.T) {
	cfg := testConfig(t)
	for _, args := range [][]string{{"save"}, {"list"}, {"load", "x"}, {"delete", "x"}} {
		if _, err := run(t, cfg, args...); !errors.Is(err, errNoRemote) {
			t.Errorf("%v: expected errNoRemote, got %v", args, err)
		}
	}
}

func TestSave_Remote(t *testing.T) {
	var saves int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "unexpected", http.StatusMethodNotAllowed)
			return
		}
		saves++
		_ = json.NewEncoder(w).Encode(persist.Response{
			Success: true,
			Message: "Timetable auto-saved successfully",
			Data:    &persist.ResponseData{ID: "tt-1"},
		})
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.Remote.BaseURL = srv.URL

	out := mustRun(t, cfg, "add", "mon", "8:20")
	if !strings.Contains(out, "save ok (id tt-1)") {
		t.Errorf("add output = %q", out)
	}
	out = mustRun(t, cfg, "save")
	if !strings.Contains(out, "save ok (id tt-1)") {
		t.Errorf("save output = %q", out)
	}
	if saves != 2 {
		t.Errorf("saves = %d, want 2", saves)
	}
}

func TestSave_RemoteDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.Remote.BaseURL = srv.URL

	out := mustRun(t, cfg, "add", "mon", "8:20")
	if !strings.Contains(out, "kept offline copy") {
		t.Errorf("add output = %q", out)
	}

	cfg.Remote.BaseURL = ""
	if out := mustRun(t, cfg, "show"); !strings.Contains(out, "CHE") {
		t.Errorf("lesson should survive a failed remote save:\n%s", out)
	}
}

func TestConfigInteractive_Create(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	if err := runConfigInteractive(path, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runConfigInteractive: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
	if !strings.Contains(out.String(), "Created "+path) {
		t.Errorf("output = %q", out.String())
	}
}

func TestConfigInteractive_Edit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// Answers: edit, name, user id, subject id; everything else keeps its value.
	input := "y\nWeek B\n\nabc\n5\n"
	var out bytes.Buffer

	if err := runConfigInteractive(path, strings.NewReader(input), &out); err != nil {
		t.Fatalf("runConfigInteractive: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Timetable.Name != "Week B" {
		t.Errorf("Name = %q, want %q", cfg.Timetable.Name, "Week B")
	}
	if cfg.Subject.ID != 5 {
		t.Errorf("Subject.ID = %d, want 5", cfg.Subject.ID)
	}
	if !strings.Contains(out.String(), `Invalid number "abc"`) {
		t.Errorf("expected invalid number prompt, got %q", out.String())
	}
}
