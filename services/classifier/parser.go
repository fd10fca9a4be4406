package classifier

import (
	"encoding/json"
	"strings"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/internal/enum"
)

const (
	degradedSummary = "Failed to analyze email - Invalid AI response format"
	defaultSummary  = "No summary available"
	defaultAction   = "Review manually"
	defaultCategory = "other"
)

// parseClassificationText turns raw model output into a verdict. Markdown
// fences and surrounding prose are tolerated. A text that yields no JSON
// object at all degrades to a zero-confidence manual-review result instead
// of failing, so a garbled model reply never aborts ingestion.
func parseClassificationText(text string) *dto.ClassificationResult {
	jsonText := extractJSONObject(text)
	if jsonText == "" {
		return degradedResult()
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return degradedResult()
	}

	result := &dto.ClassificationResult{
		Sentiment:       enum.DecodeSentiment(stringField(raw, "sentiment", string(enum.SentimentNeutral))),
		InterestLevel:   enum.DecodeInterestLevel(stringField(raw, "interest_level", string(enum.InterestNone))),
		Summary:         stringField(raw, "summary", defaultSummary),
		SuggestedAction: stringField(raw, "recommended_action", defaultAction),
		Category:        stringField(raw, "category", defaultCategory),
		ConfidenceScore: floatField(raw, "confidence_score", 0.5),
		Raw:             raw,
	}
	if result.ConfidenceScore < 0 {
		result.ConfidenceScore = 0
	}
	if result.ConfidenceScore > 1 {
		result.ConfidenceScore = 1
	}
	return result
}

func degradedResult() *dto.ClassificationResult {
	return &dto.ClassificationResult{
		Sentiment:       enum.SentimentNeutral,
		InterestLevel:   enum.InterestNone,
		ConfidenceScore: 0,
		Summary:         degradedSummary,
		SuggestedAction: defaultAction,
		Category:        defaultCategory,
	}
}

// extractJSONObject strips markdown code fences and returns the first
// balanced top-level {...} block, or empty string when none exists.
func extractJSONObject(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1]
			}
		}
	}
	return ""
}

func stringField(raw map[string]interface{}, key, fallback string) string {
	if value, ok := raw[key].(string); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func floatField(raw map[string]interface{}, key string, fallback float64) float64 {
	if value, ok := raw[key].(float64); ok {
		return value
	}
	return fallback
}
