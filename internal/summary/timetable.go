// Package summary provides shared timetable summary utilities.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/timetabler/internal/analytics"
	"github.com/javiermolinar/timetabler/internal/lesson"
	"github.com/javiermolinar/timetabler/internal/llm"
)

// TimetableSummary holds the computed view of one week and optional insight.
type TimetableSummary struct {
	Name            string
	Store           lesson.Store
	Analytics       analytics.Analytics
	Tips            []analytics.Tip
	Recommendations []string
	Gaps            []string
	Conflicts       []string
	OrphanedDoubles []string
	Insight         string
}

// Healthy reports whether the week has no conflicts or broken double lessons.
func (s *TimetableSummary) Healthy() bool {
	return len(s.Conflicts) == 0 && len(s.OrphanedDoubles) == 0
}

// BuildOptions configures Build.
type BuildOptions struct {
	Name           string
	Now            time.Time
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
	// Client overrides the provider settings when set.
	Client llm.Client
}

// Summarize builds the summary data for a store.
func Summarize(name string, s lesson.Store, now time.Time) *TimetableSummary {
	a := analytics.Compute(s, now)
	return &TimetableSummary{
		Name:            name,
		Store:           s.Clone(),
		Analytics:       a,
		Tips:            analytics.Tips(s, a),
		Recommendations: analytics.Recommendations(a),
		Gaps:            analytics.Gaps(a),
		Conflicts:       lesson.Conflicts(s),
		OrphanedDoubles: lesson.OrphanedDoubles(s),
	}
}

// Build summarizes the store and optionally adds model insight.
func Build(ctx context.Context, s lesson.Store, opts BuildOptions) (*TimetableSummary, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	summary := Summarize(opts.Name, s, now)

	if !opts.IncludeInsight || s.IsEmpty() {
		return summary, nil
	}

	client := opts.Client
	if client == nil {
		if opts.Model == "" {
			return nil, errors.New("model is required for insight")
		}
		var err error
		client, err = llm.NewClient(opts.Provider, opts.Model, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
	}

	insight, err := llm.NewEvaluator(client).Evaluate(ctx, summary.Store, summary.Analytics)
	if err != nil {
		return nil, fmt.Errorf("evaluating timetable: %w", err)
	}
	summary.Insight = insight.String()
	return summary, nil
}
