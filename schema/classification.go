package schema

// Classification is the normalized result of a vision analysis. The
// Jurisdiction field is populated by the parser for completeness but report
// creation always overrides it with the coordinate-based resolver output.
type Classification struct {
	IsPothole         bool          `json:"is_pothole"`
	SizeCategory      SizeCategory  `json:"size_category"`
	PriorityColor     PriorityColor `json:"priority_color"`
	EstimatedDuration string        `json:"estimated_duration"`
	Jurisdiction      string        `json:"jurisdiction"`
}

// DefaultClassification is the fallback record used whenever the vision
// call fails or its output cannot be parsed. Report creation must never be
// blocked by a classification failure.
func DefaultClassification() Classification {
	return Classification{
		IsPothole:         false,
		SizeCategory:      SizeSmall,
		PriorityColor:     ColorGreen,
		EstimatedDuration: "4 hours",
		Jurisdiction:      "Unknown",
	}
}

// AnalysisResponse is the raw outcome of a vision model call before any
// structured parsing.
type AnalysisResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DetectionResult is the legacy detection-service contract. It is served by
// its own endpoint and never merged with Classification.
type DetectionResult struct {
	HasPothole bool    `json:"has_pothole"`
	Size       string  `json:"size"`
	Confidence float64 `json:"confidence"`
}
