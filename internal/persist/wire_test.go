package persist

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

func TestNewSaveRequest(t *testing.T) {
	sl, err := lesson.NewSlot(grid.Friday, "16:20", biology)
	if err != nil {
		t.Fatal(err)
	}
	sl.Topic = &lesson.Topic{ID: 9, Title: "Cells"}
	sl.Notes = "microscopes"

	req := NewSaveRequest(Timetable{
		Name:    "Week",
		Subject: biology,
		Slots:   lesson.NewStore(sl),
	})
	if req.SubjectID != 3 || len(req.Slots) != 1 {
		t.Fatalf("request = %+v", req)
	}
	p := req.Slots[0]
	if p.DayOfWeek != "FRI" || p.PeriodNumber != 15 || !p.IsEvening || p.TopicID == nil || *p.TopicID != 9 {
		t.Errorf("slot payload = %+v", p)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	for _, key := range []string{`"day_of_week":"FRI"`, `"time_slot":"16:20"`, `"selected_topics":[]`, `"is_evening":true`} {
		if !strings.Contains(body, key) {
			t.Errorf("body missing %s: %s", key, body)
		}
	}
	if strings.Contains(body, "timetable_id") {
		t.Errorf("unsaved timetable should omit timetable_id: %s", body)
	}
}

func TestDecodeLocal_RejectsUnknownCells(t *testing.T) {
	data := []byte(`{"name":"x","slots":[{"day":"SUN","timeSlot":"8:20","period":3}]}`)
	if _, err := decodeLocal(data); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("err = %v, want ErrInvalidRecord", err)
	}
	if _, err := decodeLocal([]byte("{")); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("err = %v, want ErrInvalidRecord", err)
	}
}

func TestResponseData_RequiresID(t *testing.T) {
	_, err := ResponseData{}.Timetable()
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("err = %v, want ErrInvalidRecord", err)
	}
}
