package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/javiermolinar/timetabler/internal/config"
	"github.com/javiermolinar/timetabler/internal/lesson"
	"github.com/javiermolinar/timetabler/internal/persist"
)

type fakeSaver struct {
	calls  int
	result persist.Result
}

func (f *fakeSaver) SaveNow(context.Context) persist.Result {
	f.calls++
	return f.result
}

func TestSaveNow(t *testing.T) {
	saver := &fakeSaver{result: persist.Result{State: persist.StateSaved, ID: "tt-1"}}

	msg := SaveNow(saver)()

	saved, ok := msg.(SavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want SavedMsg", msg)
	}
	if saved.Result.ID != "tt-1" || saver.calls != 1 {
		t.Errorf("result = %+v, calls = %d", saved.Result, saver.calls)
	}
}

func TestCopyWith(t *testing.T) {
	var got string
	msg := copyWith(func(s string) error { got = s; return nil }, "grid text", "timetable")()

	status, ok := msg.(StatusMsgCmd)
	if !ok {
		t.Fatalf("msg = %T, want StatusMsgCmd", msg)
	}
	if status.Msg != "Copied timetable to clipboard" {
		t.Errorf("Msg = %q", status.Msg)
	}
	if got != "grid text" {
		t.Errorf("clipboard = %q", got)
	}
}

func TestCopyWith_Error(t *testing.T) {
	boom := errors.New("no clipboard")
	msg := copyWith(func(string) error { return boom }, "x", "timetable")()

	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, boom) {
		t.Errorf("Err = %v, want wrapped %v", errMsg.Err, boom)
	}
}

func TestInsight_EmptyWeekSkipsModel(t *testing.T) {
	msg := Insight("Week A", lesson.NewStore(), config.LLMConfig{Provider: "ollama"})()

	got, ok := msg.(InsightMsg)
	if !ok {
		t.Fatalf("msg = %T, want InsightMsg", msg)
	}
	if got.Summary.Name != "Week A" || got.Summary.Insight != "" {
		t.Errorf("summary = %+v", got.Summary)
	}
}

func TestInsight_NeedsModel(t *testing.T) {
	s, err := lesson.NewSlot("MON", "8:20", &lesson.Subject{ID: 1, Name: "Chemistry"})
	if err != nil {
		t.Fatal(err)
	}
	msg := Insight("Week A", lesson.NewStore(s), config.LLMConfig{Provider: "ollama"})()

	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("msg = %T, want ErrMsg without a model", msg)
	}
}
