package domain

import "time"

// KeyMetrics are the headline numbers for one category.
type KeyMetrics struct {
	TotalTickets      int
	AvgResolutionTime string
	CSAT              string
}

// SentimentBreakdown holds percentages in [0,100] that sum to roughly 100.
type SentimentBreakdown struct {
	Positive float64
	Neutral  float64
	Negative float64
}

// CategoryInsight is the aggregate view over all tickets in one category.
// Derived and ephemeral; recomputed whenever the selected category changes.
type CategoryInsight struct {
	KeyMetrics        KeyMetrics
	SentimentAnalysis SentimentBreakdown
	CommonKeywords    []string
}

// SubCategoryInsight is one recurring sub-topic within a category. A set of
// these is "top N", not exhaustive, so percentages need not sum to 100.
type SubCategoryInsight struct {
	SubCategoryName string
	Percentage      float64
	Summary         string
}

// PredictiveInsight is a forward-looking trend statement. Confidence is
// always within [0,1]; records that fail that check are dropped upstream.
type PredictiveInsight struct {
	Trend      string
	Prediction string
	Confidence float64
}

// AlertSeverity is the closed severity scale for proactive alerts.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "High"
	SeverityMedium AlertSeverity = "Medium"
	SeverityLow    AlertSeverity = "Low"
)

// ParseSeverity maps an arbitrary string to an AlertSeverity, defaulting to
// Medium.
func ParseSeverity(s string) AlertSeverity {
	switch normalizeEnumToken(s) {
	case "high":
		return SeverityHigh
	case "low":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// Alert is a proactive cross-cutting issue surfaced from high-priority
// tickets. Timestamp is set at generation time, not ticket time.
type Alert struct {
	ID          string
	Title       string
	Description string
	Severity    AlertSeverity
	Timestamp   time.Time
}
