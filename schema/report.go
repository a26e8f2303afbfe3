package schema

import "time"

// ReportStatus is the workflow state of a pothole report. Any status may be
// set to any other status; only enum membership is validated.
type ReportStatus string

const (
	StatusReported   ReportStatus = "Reported"
	StatusAnalyzed   ReportStatus = "Analyzed"
	StatusInProgress ReportStatus = "In Progress"
	StatusFinished   ReportStatus = "Finished"
)

// ReportStatuses lists every valid status value.
var ReportStatuses = []ReportStatus{
	StatusReported,
	StatusAnalyzed,
	StatusInProgress,
	StatusFinished,
}

func (s ReportStatus) Valid() bool {
	for _, v := range ReportStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type SizeCategory string

const (
	SizeSmall  SizeCategory = "Small"
	SizeMedium SizeCategory = "Medium"
	SizeLarge  SizeCategory = "Large"
)

func (s SizeCategory) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

type PriorityColor string

const (
	ColorGreen  PriorityColor = "Green"
	ColorYellow PriorityColor = "Yellow"
	ColorRed    PriorityColor = "Red"
)

func (c PriorityColor) Valid() bool {
	switch c {
	case ColorGreen, ColorYellow, ColorRed:
		return true
	}
	return false
}

// ColorForSize maps a size category to its priority color.
// Small is Green, Medium is Yellow, Large is Red.
func ColorForSize(s SizeCategory) PriorityColor {
	switch s {
	case SizeLarge:
		return ColorRed
	case SizeMedium:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// DurationForSize returns the default repair duration label for a size.
func DurationForSize(s SizeCategory) string {
	switch s {
	case SizeLarge:
		return "3 days"
	case SizeMedium:
		return "1 day"
	default:
		return "4 hours"
	}
}

// StatusHistoryEntry records one status value with the time it was set.
type StatusHistoryEntry struct {
	Status ReportStatus `json:"status"`
	At     string       `json:"at"`
}

// Report is a single pothole report. All fields except Status and
// StatusHistory are immutable after creation.
type Report struct {
	ID                string               `json:"id"`
	UserLat           float64              `json:"user_lat"`
	UserLong          float64              `json:"user_long"`
	ImageFile         string               `json:"image_file"`
	Timestamp         string               `json:"timestamp"`
	IsPothole         bool                 `json:"is_pothole"`
	SizeCategory      SizeCategory         `json:"size_category"`
	PriorityColor     PriorityColor        `json:"priority_color"`
	Jurisdiction      string               `json:"jurisdiction"`
	EstimatedDuration string               `json:"estimated_duration"`
	Status            ReportStatus         `json:"status"`
	StatusHistory     []StatusHistoryEntry `json:"status_history"`
}

// CreatedAt parses the report timestamp. Timestamps are stored as RFC 3339
// strings; callers must treat a parse error as "age unknown" rather than
// failing the whole computation.
func (r Report) CreatedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Timestamp)
}
