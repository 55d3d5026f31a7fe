package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/javiermolinar/timetabler/internal/analytics"
	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
)

const insightSystemPrompt = `You are a concise teaching-schedule coach. Answer with a single JSON object and nothing else.`

const insightPromptTemplate = `Review this weekly class timetable and answer with EXACTLY this JSON shape:

{"theme": "2-4 word summary", "observations": ["..."], "next_steps": ["..."]}

Rules:
- At most 3 observations and 2 next steps, each under 80 characters
- Refer to concrete days and times from the data
- Consider learner fatigue, spacing between sessions and evening load
- Do not repeat the metrics verbatim

Legend: [S] single 40 minute lesson, [D] double 80 minute lesson, [E] evening session

Metrics:
%s

Week:
%s`

// Insight is the coaching note returned by the model.
type Insight struct {
	Theme        string   `json:"theme"`
	Observations []string `json:"observations"`
	NextSteps    []string `json:"next_steps"`
}

// String renders the insight as plain text.
func (in Insight) String() string {
	var sb strings.Builder
	if in.Theme != "" {
		fmt.Fprintf(&sb, "THEME: %s\n", in.Theme)
	}
	for _, o := range in.Observations {
		fmt.Fprintf(&sb, "• %s\n", o)
	}
	if len(in.NextSteps) > 0 {
		sb.WriteString("\nNEXT WEEK:\n")
		for _, s := range in.NextSteps {
			fmt.Fprintf(&sb, "➜  %s\n", s)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Evaluator asks a model for a short review of a timetable.
type Evaluator struct {
	client Client
}

// NewEvaluator creates a new Evaluator with the given LLM client.
func NewEvaluator(client Client) *Evaluator {
	return &Evaluator{client: client}
}

// Evaluate sends the week and its metrics to the model.
func (e *Evaluator) Evaluate(ctx context.Context, s lesson.Store, a analytics.Analytics) (Insight, error) {
	prompt := fmt.Sprintf(insightPromptTemplate, FormatMetrics(a), FormatWeek(s))

	var in Insight
	err := e.client.ChatJSON(ctx, []Message{
		{Role: RoleSystem, Content: insightSystemPrompt},
		{Role: RoleUser, Content: prompt},
	}, &in)
	if err != nil {
		return Insight{}, err
	}
	return in, nil
}

// FormatMetrics renders the headline analytics as one line per metric.
func FormatMetrics(a analytics.Analytics) string {
	return fmt.Sprintf(
		"sessions=%d hours=%.1f singles=%d doubles=%d evening=%d days=%d pattern=%q workload=%s (%d%%) efficiency=%d",
		a.TotalSessions, a.TotalHours, a.SingleLessons, a.DoubleLessons, a.EveningLessons,
		a.TotalDays, a.PatternType, a.WorkloadLevel, a.WorkloadPercentage, a.Efficiency,
	)
}

// FormatWeek renders one line per session, grouped by day. A double lesson is
// shown once, spanning both periods.
func FormatWeek(s lesson.Store) string {
	byDay := make(map[grid.Day][]lesson.Slot)
	s.Each(func(sl lesson.Slot) {
		if sl.IsSession() {
			byDay[sl.Day] = append(byDay[sl.Day], sl)
		}
	})

	var sb strings.Builder
	for _, day := range grid.Days() {
		slots := byDay[day]
		if len(slots) == 0 {
			continue
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i].Period < slots[j].Period })

		fmt.Fprintf(&sb, "%s\n", day.Name())
		for _, sl := range slots {
			kind, length := "[S]", grid.LessonMinutes
			if sl.IsDoubleLesson {
				kind, length = "[D]", 2*grid.LessonMinutes
			}
			evening := "   "
			if sl.IsEvening {
				evening = "[E]"
			}
			start := grid.TimeToMinutes(sl.TimeSlotID)
			fmt.Fprintf(&sb, "  %s %s-%s  %s  %s", evening,
				sl.TimeSlotID, grid.MinutesToID(start+length), kind, subjectName(sl.Subject))
			if sl.Notes != "" {
				fmt.Fprintf(&sb, "  (%s)", sl.Notes)
			}
			sb.WriteString("\n")
		}
	}
	if sb.Len() == 0 {
		return "(no lessons scheduled)\n"
	}
	return sb.String()
}

func subjectName(s *lesson.Subject) string {
	if s == nil || s.Name == "" {
		return "Lesson"
	}
	return s.Name
}
