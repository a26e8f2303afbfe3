package insight

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/TahPapeJe/PotSoft/external/gemini"
	"github.com/TahPapeJe/PotSoft/metrics"
	"github.com/TahPapeJe/PotSoft/schema"
	"github.com/TahPapeJe/PotSoft/stats"
	"github.com/TahPapeJe/PotSoft/store"
)

// Engine wires the report store, the statistics builder, the gemini text
// generation call and the per-kind cache together.
type Engine struct {
	client gemini.Client
	store  store.PotholeStore
	cache  *Cache
	now    func() time.Time
}

// NewEngine - return an insight engine with its own cache.
func NewEngine(client gemini.Client, potholeStore store.PotholeStore, ttl time.Duration) *Engine {
	return &Engine{
		client: client,
		store:  potholeStore,
		cache:  NewCache(ttl),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ClearCache forces the next retrieval of every kind to recompute.
func (e *Engine) ClearCache() {
	log.WithField("prefix", "insight").Info("insight cache cleared")
	e.cache.InvalidateAll()
}

// Summary generates the executive briefing.
func (e *Engine) Summary(ctx context.Context) (Result, error) {
	return e.generate(ctx, KindSummary, e.summaryPrompt)
}

// Trends generates the trend analysis.
func (e *Engine) Trends(ctx context.Context) (Result, error) {
	return e.generate(ctx, KindTrends, e.trendsPrompt)
}

// Recommendations generates the prioritised fix list.
func (e *Engine) Recommendations(ctx context.Context) (Result, error) {
	return e.generate(ctx, KindRecommendations, e.recommendationsPrompt)
}

// JurisdictionScores generates per-authority performance scorecards.
func (e *Engine) JurisdictionScores(ctx context.Context) (Result, error) {
	return e.generate(ctx, KindJurisdictions, e.jurisdictionsPrompt)
}

func (e *Engine) generate(ctx context.Context, kind Kind, prompt func() string) (Result, error) {
	metrics.InsightRequestsTotal.WithLabelValues(string(kind)).Inc()

	return e.cache.GetOrCompute(kind, func() (Result, error) {
		raw, err := e.client.GenerateInsight(ctx, prompt())
		if err != nil {
			return nil, err
		}
		return Result(gemini.ParseInsight(raw)), nil
	})
}

func (e *Engine) buildSummary() stats.Summary {
	return stats.BuildSummary(e.store.ListReports(), e.now())
}

func (e *Engine) summaryPrompt() string {
	summary := e.buildSummary()
	return `You are PotSoft AI, an infrastructure analytics assistant for Malaysian road maintenance.

Given this pothole report data summary, write an executive briefing in JSON format.

DATA:
` + jsonIndent(summary) + `

Respond with ONLY valid JSON (no markdown, no code fences):
{
  "title": "Weekly Infrastructure Report",
  "date_range": "description of the data period",
  "overview": "2-3 sentence natural-language summary of the overall situation",
  "key_stats": [
    {"label": "Total Reports", "value": "` + jsonNumber(float64(summary.TotalReports)) + `", "trend": "up|down|stable"},
    {"label": "Resolution Rate", "value": "` + jsonNumber(summary.ResolutionRate) + `%", "trend": "up|down|stable"},
    {"label": "Overdue", "value": "` + jsonNumber(float64(summary.OverdueCount)) + `", "trend": "up|down|stable"},
    {"label": "Avg Age", "value": "` + jsonNumber(summary.AvgAgeHours) + `h", "trend": "up|down|stable"}
  ],
  "highlights": ["highlight 1", "highlight 2", "highlight 3"],
  "recommendations": ["recommendation 1", "recommendation 2", "recommendation 3"]
}
`
}

func (e *Engine) trendsPrompt() string {
	summary := e.buildSummary()
	return `You are PotSoft AI, an infrastructure analytics assistant.

Analyse these pothole report statistics and identify trends.

DATA:
` + jsonIndent(summary) + `

Respond with ONLY valid JSON (no markdown, no code fences):
{
  "emerging_hotspots": [
    {"jurisdiction": "name", "reason": "why this is emerging", "severity": "high|medium|low", "report_count": <int>}
  ],
  "worsening_areas": [
    {"jurisdiction": "name", "issue": "description of deterioration", "metric": "specific stat"}
  ],
  "positive_trends": [
    {"description": "something improving", "metric": "specific stat"}
  ],
  "daily_pattern": "one sentence about report timing patterns",
  "overall_direction": "improving|stable|declining",
  "summary": "2-3 sentence natural-language trend summary"
}
`
}

// actionableReport is the shortlist row embedded in the recommendations
// prompt.
type actionableReport struct {
	ID           string               `json:"id"`
	Jurisdiction string               `json:"jurisdiction"`
	Priority     schema.PriorityColor `json:"priority"`
	Size         schema.SizeCategory  `json:"size"`
	Status       schema.ReportStatus  `json:"status"`
	AgeHours     float64              `json:"age_hours"`
	Lat          float64              `json:"lat"`
	Lng          float64              `json:"lng"`
}

func (e *Engine) recommendationsPrompt() string {
	now := e.now()
	reports := e.store.ListReports()

	actionable := make([]schema.Report, 0, len(reports))
	for _, r := range reports {
		if r.Status == schema.StatusReported || r.Status == schema.StatusAnalyzed {
			actionable = append(actionable, r)
		}
	}

	// Red first, then oldest first.
	prioOrder := map[schema.PriorityColor]int{
		schema.ColorRed:    0,
		schema.ColorYellow: 1,
		schema.ColorGreen:  2,
	}
	sort.SliceStable(actionable, func(i, j int) bool {
		pi, pj := prioOrder[actionable[i].PriorityColor], prioOrder[actionable[j].PriorityColor]
		if pi != pj {
			return pi < pj
		}
		return actionable[i].Timestamp < actionable[j].Timestamp
	})

	if len(actionable) > 20 {
		actionable = actionable[:20]
	}
	shortlist := make([]actionableReport, 0, len(actionable))
	for _, r := range actionable {
		shortlist = append(shortlist, actionableReport{
			ID:           r.ID,
			Jurisdiction: r.Jurisdiction,
			Priority:     r.PriorityColor,
			Size:         r.SizeCategory,
			Status:       r.Status,
			AgeHours:     math.Round(stats.AgeHours(r, now)*10) / 10,
			Lat:          r.UserLat,
			Lng:          r.UserLong,
		})
	}

	summary := stats.BuildSummary(reports, now)
	return `You are PotSoft AI, a road maintenance prioritisation expert.

Given these actionable pothole reports and overall statistics, rank the top 10 reports
that should be fixed first. Consider severity, age, clustering (nearby reports), and
jurisdiction workload.

ACTIONABLE REPORTS:
` + jsonIndent(shortlist) + `

OVERALL STATS:
` + jsonIndent(summary) + `

Respond with ONLY valid JSON (no markdown, no code fences):
{
  "priority_queue": [
    {
      "rank": 1,
      "report_id": "id",
      "jurisdiction": "name",
      "priority": "Red|Yellow|Green",
      "age_hours": 48.2,
      "size": "Small|Medium|Large",
      "reason": "why fix this first",
      "urgency": "critical|high|medium",
      "estimated_impact": "description of impact if not fixed"
    }
  ],
  "clustering_insights": "description of geographic clusters that could be batched for efficiency",
  "resource_suggestion": "recommendation on how to allocate repair crews"
}
`
}

func (e *Engine) jurisdictionsPrompt() string {
	summary := e.buildSummary()
	return `You are PotSoft AI, a municipal performance evaluator.

Rate each jurisdiction's road-maintenance performance based on:
- Resolution rate (% finished)
- Average response time (hours open)
- Number of overdue reports
- Proportion of high-priority (Red) reports

JURISDICTION DATA:
` + jsonIndent(summary.Jurisdictions) + `

Respond with ONLY valid JSON (no markdown, no code fences):
{
  "scorecards": [
    {
      "jurisdiction": "name",
      "grade": "A|B|C|D|F",
      "resolution_rate": <float>,
      "avg_response_hours": <float>,
      "overdue": <int>,
      "red_count": <int>,
      "total": <int>,
      "summary": "one sentence assessment",
      "suggestion": "one sentence improvement suggestion"
    }
  ],
  "best_performer": "jurisdiction name",
  "needs_attention": "jurisdiction name",
  "overall_assessment": "2-3 sentence overall assessment of municipal performance"
}
`
}

func jsonIndent(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func jsonNumber(v float64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
