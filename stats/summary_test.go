package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/TahPapeJe/PotSoft/schema"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func makeReport(id string, age time.Duration, size schema.SizeCategory, status schema.ReportStatus, jurisdiction string) schema.Report {
	return schema.Report{
		ID:            id,
		Timestamp:     testNow.Add(-age).Format(time.RFC3339),
		IsPothole:     true,
		SizeCategory:  size,
		PriorityColor: schema.ColorForSize(size),
		Jurisdiction:  jurisdiction,
		Status:        status,
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil, testNow)

	assert.Equal(t, 0, s.TotalReports)
	assert.Equal(t, 0.0, s.ResolutionRate)
	assert.Equal(t, 0.0, s.AvgAgeHours)
	assert.Equal(t, 0, s.OverdueCount)
	assert.Empty(t, s.OverdueIDs)
	assert.Equal(t, 0, s.JurisdictionCount)
}

func TestBuildSummaryGroupCountsRoundTrip(t *testing.T) {
	reports := []schema.Report{
		makeReport("a", 1*time.Hour, schema.SizeLarge, schema.StatusReported, "DBKL Kuala Lumpur"),
		makeReport("b", 2*time.Hour, schema.SizeMedium, schema.StatusAnalyzed, "DBKL Kuala Lumpur"),
		makeReport("c", 3*time.Hour, schema.SizeSmall, schema.StatusFinished, "MBPP George Town"),
		makeReport("d", 4*time.Hour, schema.SizeLarge, schema.StatusInProgress, "MBPP George Town"),
		makeReport("e", 5*time.Hour, schema.SizeSmall, schema.StatusFinished, "MBJB Johor Bahru"),
	}

	s := BuildSummary(reports, testNow)

	assert.Equal(t, 5, s.TotalReports)

	sum := func(m map[schema.PriorityColor]int) int {
		n := 0
		for _, v := range m {
			n += v
		}
		return n
	}
	assert.Equal(t, s.TotalReports, sum(s.Priority))

	statusTotal := 0
	for _, v := range s.Status {
		statusTotal += v
	}
	assert.Equal(t, s.TotalReports, statusTotal)

	sizeTotal := 0
	for _, v := range s.Size {
		sizeTotal += v
	}
	assert.Equal(t, s.TotalReports, sizeTotal)

	// 2 of 5 finished
	assert.Equal(t, 40.0, s.ResolutionRate)
	assert.Equal(t, 3, s.JurisdictionCount)
}

func TestBuildSummaryOmitsZeroCategories(t *testing.T) {
	reports := []schema.Report{
		makeReport("a", 1*time.Hour, schema.SizeSmall, schema.StatusAnalyzed, "JKR Perlis"),
	}

	s := BuildSummary(reports, testNow)

	_, hasRed := s.Priority[schema.ColorRed]
	assert.False(t, hasRed)
	_, hasFinished := s.Status[schema.StatusFinished]
	assert.False(t, hasFinished)
}

func TestBuildSummaryUnparseableTimestamps(t *testing.T) {
	broken := makeReport("x", time.Hour, schema.SizeSmall, schema.StatusReported, "JKR Perlis")
	broken.Timestamp = "not-a-timestamp"

	ok := makeReport("y", 10*time.Hour, schema.SizeSmall, schema.StatusAnalyzed, "JKR Perlis")

	s := BuildSummary([]schema.Report{broken, ok}, testNow)

	// Both count toward totals, only one toward age stats.
	assert.Equal(t, 2, s.TotalReports)
	assert.Equal(t, 10.0, s.AvgAgeHours)
	// A broken timestamp can never be overdue.
	assert.Equal(t, 0, s.OverdueCount)
}

func TestBuildSummaryAvgAgeAllUnparseable(t *testing.T) {
	broken := makeReport("x", time.Hour, schema.SizeSmall, schema.StatusReported, "JKR Perlis")
	broken.Timestamp = "garbage"

	s := BuildSummary([]schema.Report{broken}, testNow)
	assert.Equal(t, 0.0, s.AvgAgeHours)
}

func TestBuildSummaryOverdueCapped(t *testing.T) {
	var reports []schema.Report
	for i := 0; i < 25; i++ {
		reports = append(reports, makeReport(
			fmt.Sprintf("r%02d", i), 48*time.Hour, schema.SizeLarge, schema.StatusReported, "DBKL Kuala Lumpur"))
	}

	s := BuildSummary(reports, testNow)

	assert.Equal(t, 25, s.OverdueCount)
	assert.Len(t, s.OverdueIDs, 20)
}

func TestBuildSummaryOverdueRule(t *testing.T) {
	reports := []schema.Report{
		// Reported and older than 24h: overdue.
		makeReport("old-reported", 30*time.Hour, schema.SizeLarge, schema.StatusReported, "JKR Perlis"),
		// Reported but fresh: not overdue.
		makeReport("new-reported", 2*time.Hour, schema.SizeLarge, schema.StatusReported, "JKR Perlis"),
		// Old but no longer Reported: not overdue.
		makeReport("old-analyzed", 30*time.Hour, schema.SizeLarge, schema.StatusAnalyzed, "JKR Perlis"),
	}

	s := BuildSummary(reports, testNow)

	assert.Equal(t, 1, s.OverdueCount)
	assert.Equal(t, []string{"old-reported"}, s.OverdueIDs)
}

func TestBuildSummaryJurisdictionRollup(t *testing.T) {
	reports := []schema.Report{
		makeReport("a", 30*time.Hour, schema.SizeLarge, schema.StatusReported, "DBKL Kuala Lumpur"),
		makeReport("b", 10*time.Hour, schema.SizeSmall, schema.StatusFinished, "DBKL Kuala Lumpur"),
		makeReport("c", 20*time.Hour, schema.SizeMedium, schema.StatusInProgress, "DBKL Kuala Lumpur"),
		makeReport("d", 5*time.Hour, schema.SizeSmall, schema.StatusAnalyzed, "MBPP George Town"),
	}

	s := BuildSummary(reports, testNow)

	kl := s.Jurisdictions["DBKL Kuala Lumpur"]
	assert.Equal(t, 3, kl.Total)
	assert.Equal(t, 1, kl.Finished)
	assert.Equal(t, 1, kl.Red)
	assert.Equal(t, 1, kl.Overdue)
	assert.Equal(t, 33.3, kl.ResolutionRate)
	// Open hours average only the two non-Finished reports: (30+20)/2.
	assert.Equal(t, 25.0, kl.AvgOpenHours)

	pg := s.Jurisdictions["MBPP George Town"]
	assert.Equal(t, 1, pg.Total)
	assert.Equal(t, 0.0, pg.ResolutionRate)
	assert.Equal(t, 5.0, pg.AvgOpenHours)
}

func TestBuildSummaryDailyVolume(t *testing.T) {
	dayBefore := makeReport("a", 36*time.Hour, schema.SizeSmall, schema.StatusFinished, "JKR Perlis")
	sameDay := makeReport("b", 2*time.Hour, schema.SizeSmall, schema.StatusReported, "JKR Perlis")

	s := BuildSummary([]schema.Report{dayBefore, sameDay}, testNow)

	assert.Equal(t, 1, s.DailyReported["2024-03-09"])
	assert.Equal(t, 1, s.DailyReported["2024-03-10"])
	// Finished volume is attributed to the creation date, not a completion
	// date: report "a" finished at some unknown later time but counts on
	// 2024-03-09.
	assert.Equal(t, 1, s.DailyFinished["2024-03-09"])
	assert.Equal(t, 0, s.DailyFinished["2024-03-10"])
}

func TestAgeHours(t *testing.T) {
	r := makeReport("a", 90*time.Minute, schema.SizeSmall, schema.StatusReported, "JKR Perlis")
	assert.InDelta(t, 1.5, AgeHours(r, testNow), 1e-9)

	r.Timestamp = "nope"
	assert.Equal(t, 0.0, AgeHours(r, testNow))
}
