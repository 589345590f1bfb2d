package dto

import (
	"time"

	"github.com/spec-kit/ticket-intel/internal/domain"
	"github.com/spec-kit/ticket-intel/internal/service"
)

// KeyMetricsResponse holds the category headline numbers.
type KeyMetricsResponse struct {
	TotalTickets      int    `json:"totalTickets"`
	AvgResolutionTime string `json:"avgResolutionTime"`
	CSAT              string `json:"csat"`
}

// SentimentAnalysisResponse holds the percentage breakdown.
type SentimentAnalysisResponse struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// CategoryInsightResponse mirrors domain.CategoryInsight.
type CategoryInsightResponse struct {
	KeyMetrics        KeyMetricsResponse        `json:"keyMetrics"`
	SentimentAnalysis SentimentAnalysisResponse `json:"sentimentAnalysis"`
	CommonKeywords    []string                  `json:"commonKeywords"`
}

// SubCategoryInsightResponse is one sub-topic entry.
type SubCategoryInsightResponse struct {
	SubCategoryName string  `json:"subCategoryName"`
	Percentage      float64 `json:"percentage"`
	Summary         string  `json:"summary"`
}

// PredictiveInsightResponse is one trend statement.
type PredictiveInsightResponse struct {
	Trend      string  `json:"trend"`
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// AlertResponse is one proactive alert.
type AlertResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Timestamp   string `json:"timestamp"`
}

// CategoryViewResponse joins the insight bundle for one category. Insight
// is null when the category has no data or the aggregation is unavailable.
type CategoryViewResponse struct {
	Category      string                       `json:"category"`
	Insight       *CategoryInsightResponse     `json:"insight"`
	SubCategories []SubCategoryInsightResponse `json:"subCategories"`
}

// DashboardResponse is the corpus-wide view.
type DashboardResponse struct {
	PredictiveInsights []PredictiveInsightResponse `json:"predictiveInsights"`
	Alerts             []AlertResponse             `json:"alerts"`
	RefreshedAt        string                      `json:"refreshedAt"`
}

// FromCategoryView maps a service view to its response shape.
func FromCategoryView(view *service.CategoryView) CategoryViewResponse {
	resp := CategoryViewResponse{
		Category:      string(view.Category),
		SubCategories: make([]SubCategoryInsightResponse, 0, len(view.SubCategories)),
	}
	if view.Insight != nil {
		resp.Insight = &CategoryInsightResponse{
			KeyMetrics: KeyMetricsResponse{
				TotalTickets:      view.Insight.KeyMetrics.TotalTickets,
				AvgResolutionTime: view.Insight.KeyMetrics.AvgResolutionTime,
				CSAT:              view.Insight.KeyMetrics.CSAT,
			},
			SentimentAnalysis: SentimentAnalysisResponse{
				Positive: view.Insight.SentimentAnalysis.Positive,
				Neutral:  view.Insight.SentimentAnalysis.Neutral,
				Negative: view.Insight.SentimentAnalysis.Negative,
			},
			CommonKeywords: view.Insight.CommonKeywords,
		}
	}
	for _, sub := range view.SubCategories {
		resp.SubCategories = append(resp.SubCategories, SubCategoryInsightResponse{
			SubCategoryName: sub.SubCategoryName,
			Percentage:      sub.Percentage,
			Summary:         sub.Summary,
		})
	}
	return resp
}

// FromGlobalView maps the global dashboard view to its response shape.
func FromGlobalView(view service.GlobalView) DashboardResponse {
	resp := DashboardResponse{
		PredictiveInsights: make([]PredictiveInsightResponse, 0, len(view.PredictiveInsights)),
		Alerts:             make([]AlertResponse, 0, len(view.Alerts)),
	}
	for _, p := range view.PredictiveInsights {
		resp.PredictiveInsights = append(resp.PredictiveInsights, PredictiveInsightResponse{
			Trend:      p.Trend,
			Prediction: p.Prediction,
			Confidence: p.Confidence,
		})
	}
	for _, a := range view.Alerts {
		resp.Alerts = append(resp.Alerts, FromAlert(a))
	}
	if !view.RefreshedAt.IsZero() {
		resp.RefreshedAt = view.RefreshedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// FromAlert maps one alert.
func FromAlert(a domain.Alert) AlertResponse {
	return AlertResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Severity:    string(a.Severity),
		Timestamp:   a.Timestamp.UTC().Format(time.RFC3339),
	}
}
