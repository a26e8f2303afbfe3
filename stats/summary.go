// Package stats derives point-in-time aggregate views over the report
// collection. Everything here is pure computation over a snapshot; callers
// pass the collection and the current time.
package stats

import (
	"math"
	"time"

	"github.com/TahPapeJe/PotSoft/schema"
)

const (
	// overdueAfterHours marks a still-Reported record as overdue.
	overdueAfterHours = 24
	// overdueIDCap bounds the id list in the payload; the count is exact.
	overdueIDCap = 20
)

// JurisdictionSummary is the per-authority rollup.
type JurisdictionSummary struct {
	Total          int     `json:"total"`
	Finished       int     `json:"finished"`
	Red            int     `json:"red"`
	Overdue        int     `json:"overdue"`
	ResolutionRate float64 `json:"resolution_rate"`
	// AvgOpenHours averages ages of non-Finished reports only; 0 when none.
	AvgOpenHours float64 `json:"avg_open_hours"`
}

// Summary is the compact numeric aggregate fed to the insight prompts.
// Grouped counts omit categories with zero occurrences.
type Summary struct {
	TotalReports      int                            `json:"total_reports"`
	Priority          map[schema.PriorityColor]int   `json:"priority"`
	Status            map[schema.ReportStatus]int    `json:"status"`
	Size              map[schema.SizeCategory]int    `json:"size"`
	ResolutionRate    float64                        `json:"resolution_rate"`
	AvgAgeHours       float64                        `json:"avg_age_hours"`
	OverdueCount      int                            `json:"overdue_count"`
	OverdueIDs        []string                       `json:"overdue_ids"`
	JurisdictionCount int                            `json:"jurisdiction_count"`
	Jurisdictions     map[string]JurisdictionSummary `json:"jurisdictions"`
	// DailyFinished attributes finished volume to the creation date; the
	// data model has no completion timestamp, so this is a documented
	// approximation, not per-day completion counts.
	DailyReported map[string]int `json:"daily_reported"`
	DailyFinished map[string]int `json:"daily_finished"`
}

// AgeHours returns the report age in hours at the given instant, or 0 when
// the timestamp cannot be parsed.
func AgeHours(r schema.Report, now time.Time) float64 {
	ts, err := r.CreatedAt()
	if err != nil {
		return 0
	}
	return now.Sub(ts).Hours()
}

// BuildSummary aggregates the full collection. Reports with unparseable
// timestamps still count toward totals and groupings but are excluded from
// every age-based statistic.
func BuildSummary(reports []schema.Report, now time.Time) Summary {
	total := len(reports)

	priorityCounts := map[schema.PriorityColor]int{}
	statusCounts := map[schema.ReportStatus]int{}
	sizeCounts := map[schema.SizeCategory]int{}
	byJurisdiction := map[string][]schema.Report{}

	var overdueIDs []string
	overdueCount := 0
	var agesHours []float64

	for _, r := range reports {
		priorityCounts[r.PriorityColor]++
		statusCounts[r.Status]++
		sizeCounts[r.SizeCategory]++
		byJurisdiction[r.Jurisdiction] = append(byJurisdiction[r.Jurisdiction], r)

		ts, err := r.CreatedAt()
		if err != nil {
			continue
		}
		ageH := now.Sub(ts).Hours()
		agesHours = append(agesHours, ageH)
		if r.Status == schema.StatusReported && ageH > overdueAfterHours {
			overdueCount++
			if len(overdueIDs) < overdueIDCap {
				overdueIDs = append(overdueIDs, r.ID)
			}
		}
	}

	finished := statusCounts[schema.StatusFinished]
	resolutionRate := 0.0
	if total > 0 {
		resolutionRate = round1(float64(finished) / float64(total) * 100)
	}

	avgAgeHours := 0.0
	if len(agesHours) > 0 {
		sum := 0.0
		for _, a := range agesHours {
			sum += a
		}
		avgAgeHours = round1(sum / float64(len(agesHours)))
	}

	jurisdictionSummaries := make(map[string]JurisdictionSummary, len(byJurisdiction))
	for name, reps := range byJurisdiction {
		jurisdictionSummaries[name] = summarizeJurisdiction(reps, now)
	}

	dailyReported := map[string]int{}
	dailyFinished := map[string]int{}
	for _, r := range reports {
		ts, err := r.CreatedAt()
		if err != nil {
			continue
		}
		day := ts.Format("2006-01-02")
		dailyReported[day]++
		if r.Status == schema.StatusFinished {
			dailyFinished[day]++
		}
	}

	if overdueIDs == nil {
		overdueIDs = []string{}
	}

	return Summary{
		TotalReports:      total,
		Priority:          priorityCounts,
		Status:            statusCounts,
		Size:              sizeCounts,
		ResolutionRate:    resolutionRate,
		AvgAgeHours:       avgAgeHours,
		OverdueCount:      overdueCount,
		OverdueIDs:        overdueIDs,
		JurisdictionCount: len(byJurisdiction),
		Jurisdictions:     jurisdictionSummaries,
		DailyReported:     dailyReported,
		DailyFinished:     dailyFinished,
	}
}

func summarizeJurisdiction(reps []schema.Report, now time.Time) JurisdictionSummary {
	s := JurisdictionSummary{Total: len(reps)}

	var openAges []float64
	for _, r := range reps {
		if r.Status == schema.StatusFinished {
			s.Finished++
		} else {
			openAges = append(openAges, AgeHours(r, now))
		}
		if r.PriorityColor == schema.ColorRed {
			s.Red++
		}
		if r.Status == schema.StatusReported && AgeHours(r, now) > overdueAfterHours {
			s.Overdue++
		}
	}

	if s.Total > 0 {
		s.ResolutionRate = round1(float64(s.Finished) / float64(s.Total) * 100)
	}
	if len(openAges) > 0 {
		sum := 0.0
		for _, a := range openAges {
			sum += a
		}
		s.AvgOpenHours = round1(sum / float64(len(openAges)))
	}

	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
