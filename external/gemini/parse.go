package gemini

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/TahPapeJe/PotSoft/schema"
)

var (
	fenceOpenRe  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
)

// StripFences removes leading/trailing markdown code-fence markers, with an
// optional language tag on the opening fence.
func StripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpenRe.ReplaceAllString(cleaned, "")
	cleaned = fenceCloseRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ParseClassification turns free-text model output into a normalized
// classification. It never fails: a full parse failure yields the default
// record, and invalid or missing fields are defaulted individually while
// valid fields are kept. The priority color is always re-derived from the
// final size category so the size/color mapping holds regardless of what
// the model said.
func ParseClassification(raw string) schema.Classification {
	result := schema.DefaultClassification()

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(StripFences(raw)), &fields); err != nil {
		return result
	}

	if v, ok := lookupBool(fields, "is_pothole", "has_pothole", "isPothole", "hasPothole"); ok {
		result.IsPothole = v
	}

	if v, ok := lookupString(fields, "size_category", "sizeCategory", "size"); ok {
		if size := schema.SizeCategory(v); size.Valid() {
			result.SizeCategory = size
		}
	}

	if v, ok := lookupString(fields, "priority_color", "priorityColor"); ok {
		if color := schema.PriorityColor(v); color.Valid() {
			result.PriorityColor = color
		}
	}

	if v, ok := lookupString(fields, "estimated_duration", "estimatedDurationtoRepair", "estimated_duration_to_repair"); ok && v != "" {
		result.EstimatedDuration = v
	} else {
		result.EstimatedDuration = schema.DurationForSize(result.SizeCategory)
	}

	if v, ok := lookupString(fields, "jurisdiction"); ok && v != "" {
		result.Jurisdiction = v
	}

	// The size mapping wins over the raw color label.
	result.PriorityColor = schema.ColorForSize(result.SizeCategory)

	return result
}

// ParseInsight decodes an insight reply into a generic object. A parse
// failure degrades to a payload carrying the cleaned raw text so callers
// can still inspect what the model returned.
func ParseInsight(raw string) map[string]interface{} {
	cleaned := StripFences(raw)

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil || result == nil {
		return map[string]interface{}{"raw_text": cleaned}
	}
	return result
}

// ParseDetection decodes the legacy detection schema. Unlike report
// classification this surface propagates parse failures to the caller.
func ParseDetection(raw string) (schema.DetectionResult, error) {
	var result schema.DetectionResult
	if err := json.Unmarshal([]byte(StripFences(raw)), &result); err != nil {
		return schema.DetectionResult{}, fmt.Errorf("parse detection response: %w", err)
	}
	return result, nil
}

func lookupString(fields map[string]interface{}, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

func lookupBool(fields map[string]interface{}, keys ...string) (bool, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			if b, ok := v.(bool); ok {
				return b, true
			}
		}
	}
	return false, false
}
