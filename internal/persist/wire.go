package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

// SlotPayload is the wire shape of one slot.
type SlotPayload struct {
	DayOfWeek      string `json:"day_of_week" validate:"required,oneof=MON TUE WED THU FRI"`
	TimeSlot       string `json:"time_slot" validate:"required"`
	PeriodNumber   int    `json:"period_number" validate:"min=1,max=16"`
	SubjectID      int    `json:"subject_id"`
	TopicID        *int   `json:"topic_id,omitempty"`
	SubtopicID     *int   `json:"subtopic_id,omitempty"`
	IsDoubleLesson bool   `json:"is_double_lesson"`
	DoublePosition string `json:"double_position,omitempty" validate:"omitempty,oneof=top bottom"`
	IsEvening      bool   `json:"is_evening"`
	Notes          string `json:"notes"`
}

// SaveRequest is the body of a remote save.
type SaveRequest struct {
	TimetableID       string         `json:"timetable_id,omitempty"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	SubjectID         int            `json:"subject_id"`
	SchemeID          string         `json:"scheme_id,omitempty"`
	Slots             []SlotPayload  `json:"slots"`
	SelectedTopics    []int          `json:"selected_topics"`
	SelectedSubtopics []int          `json:"selected_subtopics"`
	SchemeMetadata    map[string]any `json:"scheme_metadata,omitempty"`
}

// ResponseData is the payload of a save or load response.
type ResponseData struct {
	ID                string          `json:"id" validate:"required"`
	Slots             []SlotPayload   `json:"slots" validate:"dive"`
	Subject           *lesson.Subject `json:"subject,omitempty"`
	SchemeMetadata    map[string]any  `json:"scheme_metadata,omitempty"`
	SelectedTopics    []int           `json:"selected_topics,omitempty"`
	SelectedSubtopics []int           `json:"selected_subtopics,omitempty"`
}

// Response is the envelope the remote answers with.
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    *ResponseData `json:"data,omitempty"`
}

var validate = validator.New()

// NewSaveRequest converts a timetable into its wire shape.
func NewSaveRequest(t Timetable) SaveRequest {
	req := SaveRequest{
		TimetableID:       t.ID,
		Name:              t.Name,
		Description:       t.Description,
		SchemeID:          t.SchemeID,
		Slots:             make([]SlotPayload, 0, t.Slots.Len()),
		SelectedTopics:    nonNil(t.SelectedTopics),
		SelectedSubtopics: nonNil(t.SelectedSubtopics),
		SchemeMetadata:    t.SchemeMetadata,
	}
	if t.Subject != nil {
		req.SubjectID = t.Subject.ID
	}
	t.Slots.Each(func(sl lesson.Slot) {
		p := SlotPayload{
			DayOfWeek:      string(sl.Day),
			TimeSlot:       sl.TimeSlotID,
			PeriodNumber:   sl.Period,
			SubjectID:      req.SubjectID,
			IsDoubleLesson: sl.IsDoubleLesson,
			DoublePosition: string(sl.DoublePosition),
			IsEvening:      sl.IsEvening,
			Notes:          sl.Notes,
		}
		if sl.Subject != nil {
			p.SubjectID = sl.Subject.ID
		}
		if sl.Topic != nil {
			id := sl.Topic.ID
			p.TopicID = &id
		}
		if sl.Subtopic != nil {
			id := sl.Subtopic.ID
			p.SubtopicID = &id
		}
		req.Slots = append(req.Slots, p)
	})
	return req
}

// Timetable validates the response data and converts it back into a
// timetable. Slots whose subject id matches the response subject get the full
// subject attached; topics and subtopics only carry their ids.
func (d ResponseData) Timetable() (Timetable, error) {
	if err := validate.Struct(d); err != nil {
		return Timetable{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	slots := make([]lesson.Slot, 0, len(d.Slots))
	for _, p := range d.Slots {
		sl, err := p.slot(d.Subject)
		if err != nil {
			return Timetable{}, err
		}
		slots = append(slots, sl)
	}

	t := Timetable{
		ID:                d.ID,
		Subject:           d.Subject,
		Slots:             lesson.NewStore(slots...),
		SelectedTopics:    d.SelectedTopics,
		SelectedSubtopics: d.SelectedSubtopics,
		SchemeMetadata:    d.SchemeMetadata,
	}
	return t, nil
}

// slot trusts the catalog over the payload for period and evening flags.
func (p SlotPayload) slot(subject *lesson.Subject) (lesson.Slot, error) {
	var subj *lesson.Subject
	switch {
	case subject != nil && subject.ID == p.SubjectID:
		s := *subject
		subj = &s
	case p.SubjectID != 0:
		subj = &lesson.Subject{ID: p.SubjectID}
	}

	sl, err := lesson.NewSlot(grid.Day(p.DayOfWeek), p.TimeSlot, subj)
	if err != nil {
		return lesson.Slot{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	pos, err := lesson.ParseDoublePosition(p.DoublePosition)
	if err != nil {
		return lesson.Slot{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	sl.IsDoubleLesson = p.IsDoubleLesson
	sl.DoublePosition = pos
	sl.Notes = p.Notes
	if p.TopicID != nil {
		sl.Topic = &lesson.Topic{ID: *p.TopicID}
	}
	if p.SubtopicID != nil {
		sl.Subtopic = &lesson.Subtopic{ID: *p.SubtopicID}
	}
	return sl, nil
}

// localSnapshot is the cache record. It keeps full slot detail so offline
// recovery does not lose topic titles.
type localSnapshot struct {
	ID                string          `json:"id,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Subject           *lesson.Subject `json:"subject,omitempty"`
	SchemeID          string          `json:"schemeId,omitempty"`
	Slots             []lesson.Slot   `json:"slots"`
	SelectedTopics    []int           `json:"selectedTopics"`
	SelectedSubtopics []int           `json:"selectedSubtopics"`
	SchemeMetadata    map[string]any  `json:"schemeMetadata,omitempty"`
	SavedAt           string          `json:"savedAt"`
}

func encodeLocal(t Timetable, savedAt string) ([]byte, error) {
	return json.Marshal(localSnapshot{
		ID:                t.ID,
		Name:              t.Name,
		Description:       t.Description,
		Subject:           t.Subject,
		SchemeID:          t.SchemeID,
		Slots:             t.Slots.Slots(),
		SelectedTopics:    nonNil(t.SelectedTopics),
		SelectedSubtopics: nonNil(t.SelectedSubtopics),
		SchemeMetadata:    t.SchemeMetadata,
		SavedAt:           savedAt,
	})
}

func decodeLocal(data []byte) (Timetable, error) {
	var snap localSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Timetable{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	var errs []error
	for _, sl := range snap.Slots {
		if _, ok := grid.Resolve(sl.Day, sl.TimeSlotID); !ok {
			errs = append(errs, fmt.Errorf("%w: %s", lesson.ErrUnknownCoordinate, sl.Coordinate()))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Timetable{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return Timetable{
		ID:                snap.ID,
		Name:              snap.Name,
		Description:       snap.Description,
		Subject:           snap.Subject,
		SchemeID:          snap.SchemeID,
		Slots:             lesson.NewStore(snap.Slots...),
		SelectedTopics:    snap.SelectedTopics,
		SelectedSubtopics: snap.SelectedSubtopics,
		SchemeMetadata:    snap.SchemeMetadata,
	}, nil
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
