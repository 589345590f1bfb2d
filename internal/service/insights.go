package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intel/internal/domain"
	"github.com/spec-kit/ticket-intel/internal/events"
	"github.com/spec-kit/ticket-intel/internal/oracle"
	"github.com/spec-kit/ticket-intel/internal/repository"
)

const (
	// subTopicSampleSize bounds prompt size: a deterministic prefix of the
	// category's tickets, not a random sample.
	subTopicSampleSize = 20
	// trendSampleSize bounds the recency window for predictive insights.
	trendSampleSize = 50
	// alertSampleSize bounds the high-priority sample for alert generation.
	alertSampleSize = 20

	maxCommonKeywords     = 5
	maxSubTopics          = 5
	maxPredictiveInsights = 2
	maxAlerts             = 2

	// sentimentSumTolerance is how far the oracle's sentiment percentages
	// may drift from 100 before they are rescaled.
	sentimentSumTolerance = 5.0
)

// Insights derives aggregate intelligence over subsets of the corpus. Each
// method issues its own oracle call; none of them re-classify tickets or
// write back into the corpus.
type Insights struct {
	oracle     oracle.Client
	corpus     *repository.TicketCorpus
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// InsightsDependencies bundles collaborators for the insights service.
type InsightsDependencies struct {
	Oracle     oracle.Client
	Corpus     *repository.TicketCorpus
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewInsights constructs the service.
func NewInsights(deps InsightsDependencies) *Insights {
	return &Insights{
		oracle:     deps.Oracle,
		corpus:     deps.Corpus,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

type categoryInsightPayload struct {
	KeyMetrics *struct {
		TotalTickets      *int   `json:"totalTickets"`
		AvgResolutionTime string `json:"avgResolutionTime"`
		CSAT              string `json:"csat"`
	} `json:"keyMetrics"`
	SentimentAnalysis *struct {
		Positive *float64 `json:"positive"`
		Neutral  *float64 `json:"neutral"`
		Negative *float64 `json:"negative"`
	} `json:"sentimentAnalysis"`
	CommonKeywords []string `json:"commonKeywords"`
}

// CategoryInsights synthesizes key metrics, a sentiment breakdown, and
// common keywords for one category. A category with no tickets returns
// (nil, nil) without touching the oracle. An oracle failure or a payload
// missing a required field also yields nil: callers render an explicit
// "no data" state rather than fabricated defaults.
func (s *Insights) CategoryInsights(ctx context.Context, category domain.Category) (*domain.CategoryInsight, error) {
	tickets := s.corpus.ByCategory(category)
	if len(tickets) == 0 {
		return nil, nil
	}

	raw, err := s.oracle.Complete(ctx, categoryInsightPrompt(category, tickets))
	if err != nil {
		s.logger.Warn("category insights unavailable", zap.String("category", string(category)), zap.Error(err))
		return nil, nil
	}

	var payload categoryInsightPayload
	if err := oracle.DecodeJSON(raw, &payload); err != nil {
		s.logger.Warn("category insights response rejected", zap.String("category", string(category)), zap.Error(err))
		return nil, nil
	}
	if payload.KeyMetrics == nil || payload.KeyMetrics.TotalTickets == nil || payload.SentimentAnalysis == nil ||
		payload.SentimentAnalysis.Positive == nil || payload.SentimentAnalysis.Neutral == nil || payload.SentimentAnalysis.Negative == nil {
		s.logger.Warn("category insights payload incomplete", zap.String("category", string(category)))
		return nil, nil
	}

	total := *payload.KeyMetrics.TotalTickets
	if total < 0 {
		total = 0
	}
	breakdown := normalizeSentiment(
		clampPercent(*payload.SentimentAnalysis.Positive),
		clampPercent(*payload.SentimentAnalysis.Neutral),
		clampPercent(*payload.SentimentAnalysis.Negative),
	)
	keywords := payload.CommonKeywords
	if len(keywords) > maxCommonKeywords {
		keywords = keywords[:maxCommonKeywords]
	}

	return &domain.CategoryInsight{
		KeyMetrics: domain.KeyMetrics{
			TotalTickets:      total,
			AvgResolutionTime: strings.TrimSpace(payload.KeyMetrics.AvgResolutionTime),
			CSAT:              strings.TrimSpace(payload.KeyMetrics.CSAT),
		},
		SentimentAnalysis: breakdown,
		CommonKeywords:    keywords,
	}, nil
}

type subTopicPayloadItem struct {
	SubCategoryName string   `json:"subCategoryName"`
	Percentage      *float64 `json:"percentage"`
	Summary         string   `json:"summary"`
}

// SubCategoryInsights derives up to five recurring sub-topics within one
// category from a bounded prefix of its tickets. The result is returned in
// oracle order; consumers needing a strict ranking must sort.
func (s *Insights) SubCategoryInsights(ctx context.Context, category domain.Category) ([]domain.SubCategoryInsight, error) {
	tickets := s.corpus.ByCategory(category)
	if len(tickets) == 0 {
		return []domain.SubCategoryInsight{}, nil
	}
	if len(tickets) > subTopicSampleSize {
		tickets = tickets[:subTopicSampleSize]
	}

	raw, err := s.oracle.Complete(ctx, subTopicPrompt(category, tickets))
	if err != nil {
		s.logger.Warn("sub-topic insights unavailable", zap.String("category", string(category)), zap.Error(err))
		return []domain.SubCategoryInsight{}, nil
	}

	var payload []subTopicPayloadItem
	if err := oracle.DecodeJSON(raw, &payload); err != nil {
		s.logger.Warn("sub-topic response rejected", zap.String("category", string(category)), zap.Error(err))
		return []domain.SubCategoryInsight{}, nil
	}

	out := make([]domain.SubCategoryInsight, 0, len(payload))
	for _, item := range payload {
		name := strings.TrimSpace(item.SubCategoryName)
		if name == "" || item.Percentage == nil {
			continue
		}
		out = append(out, domain.SubCategoryInsight{
			SubCategoryName: name,
			Percentage:      clampPercent(*item.Percentage),
			Summary:         strings.TrimSpace(item.Summary),
		})
		if len(out) == maxSubTopics {
			break
		}
	}
	return out, nil
}

type predictivePayloadItem struct {
	Trend      string   `json:"trend"`
	Prediction string   `json:"prediction"`
	Confidence *float64 `json:"confidence"`
}

// PredictiveInsights derives one or two forward-looking trend statements
// from the most recent tickets. A record with missing or out-of-range
// confidence is dropped individually; the rest of the response survives.
func (s *Insights) PredictiveInsights(ctx context.Context) ([]domain.PredictiveInsight, error) {
	tickets := s.corpus.Recent(trendSampleSize)
	if len(tickets) == 0 {
		return []domain.PredictiveInsight{}, nil
	}

	raw, err := s.oracle.Complete(ctx, predictivePrompt(tickets))
	if err != nil {
		s.logger.Warn("predictive insights unavailable", zap.Error(err))
		return []domain.PredictiveInsight{}, nil
	}

	var payload []predictivePayloadItem
	if err := oracle.DecodeJSON(raw, &payload); err != nil {
		s.logger.Warn("predictive response rejected", zap.Error(err))
		return []domain.PredictiveInsight{}, nil
	}

	out := make([]domain.PredictiveInsight, 0, len(payload))
	for _, item := range payload {
		trend := strings.TrimSpace(item.Trend)
		if trend == "" || item.Confidence == nil || *item.Confidence < 0 || *item.Confidence > 1 {
			continue
		}
		out = append(out, domain.PredictiveInsight{
			Trend:      trend,
			Prediction: strings.TrimSpace(item.Prediction),
			Confidence: *item.Confidence,
		})
		if len(out) == maxPredictiveInsights {
			break
		}
	}
	return out, nil
}

type alertPayloadItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Alerts surfaces up to two cross-cutting issues from the high-priority
// subset of the corpus. Zero high-priority tickets short-circuits with an
// empty list and no oracle call. Alert ids and timestamps are assigned at
// generation time.
func (s *Insights) Alerts(ctx context.Context) ([]domain.Alert, error) {
	tickets := s.corpus.ByPriority(domain.PriorityHigh, domain.PriorityUrgent)
	if len(tickets) == 0 {
		return []domain.Alert{}, nil
	}
	if len(tickets) > alertSampleSize {
		tickets = tickets[:alertSampleSize]
	}

	raw, err := s.oracle.Complete(ctx, alertPrompt(tickets))
	if err != nil {
		s.logger.Warn("alert generation unavailable", zap.Error(err))
		return []domain.Alert{}, nil
	}

	var payload []alertPayloadItem
	if err := oracle.DecodeJSON(raw, &payload); err != nil {
		s.logger.Warn("alert response rejected", zap.Error(err))
		return []domain.Alert{}, nil
	}

	now := time.Now().UTC()
	out := make([]domain.Alert, 0, len(payload))
	for _, item := range payload {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		alert := domain.Alert{
			ID:          uuid.NewString(),
			Title:       title,
			Description: strings.TrimSpace(item.Description),
			Severity:    domain.ParseSeverity(item.Severity),
			Timestamp:   now,
		}
		out = append(out, alert)
		s.publishEvent(ctx, events.Event{
			Type:    events.EventAlertRaised,
			Payload: events.AlertRaisedPayload{Alert: alert},
		})
		if len(out) == maxAlerts {
			break
		}
	}
	return out, nil
}

func (s *Insights) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func categoryInsightPrompt(category domain.Category, tickets []domain.Ticket) oracle.Prompt {
	system := `You analyze customer support tickets for one category and produce aggregate insight.
Estimate key metrics, a sentiment percentage breakdown (three numbers in [0,100] summing to 100), and up to 5 common keywords ordered by relevance.

Respond with JSON only (no markdown):
{"keyMetrics": {"totalTickets": 0, "avgResolutionTime": "24 hours", "csat": "85%"}, "sentimentAnalysis": {"positive": 0, "neutral": 0, "negative": 0}, "commonKeywords": ["..."]}`

	var lines strings.Builder
	for _, t := range tickets {
		lines.WriteString(ticketSummaryLine(t))
	}
	user := fmt.Sprintf("Category: %s\nTickets (%d):\n%s", category, len(tickets), lines.String())
	return oracle.Prompt{System: system, User: user}
}

func subTopicPrompt(category domain.Category, tickets []domain.Ticket) oracle.Prompt {
	system := `You identify recurring sub-topics within one customer support category.
Return between 3 and 5 sub-topics ranked by how often they occur, each with an estimated percentage of the category's tickets and a one-sentence summary.

Respond with JSON only (no markdown):
[{"subCategoryName": "...", "percentage": 0, "summary": "..."}, ...]`

	var lines strings.Builder
	for _, t := range tickets {
		lines.WriteString("- " + truncate(t.Content, 200) + "\n")
	}
	user := fmt.Sprintf("Category: %s\nTicket bodies:\n%s", category, lines.String())
	return oracle.Prompt{System: system, User: user}
}

func predictivePrompt(tickets []domain.Ticket) oracle.Prompt {
	system := `You detect emerging trends in customer support traffic.
From the recent tickets below, produce 1 or 2 forward-looking insights. Each has a short trend statement, a prediction of what happens next, and a confidence between 0 and 1.

Respond with JSON only (no markdown):
[{"trend": "...", "prediction": "...", "confidence": 0.8}, ...]`

	var lines strings.Builder
	for _, t := range tickets {
		lines.WriteString(fmt.Sprintf("[%s, %s] %s\n", t.Date.Format("2006-01-02"), t.Category, summaryOrContent(t)))
	}
	return oracle.Prompt{System: system, User: "Recent tickets:\n" + lines.String()}
}

func alertPrompt(tickets []domain.Ticket) oracle.Prompt {
	system := `You monitor high-priority customer support tickets for cross-cutting issues that deserve proactive attention.
From the tickets below, surface 0 to 2 alerts. Each has a short title, a one-sentence description, and a severity of High, Medium, or Low.

Respond with JSON only (no markdown):
[{"title": "...", "description": "...", "severity": "High"}, ...]`

	var lines strings.Builder
	for _, t := range tickets {
		lines.WriteString(ticketSummaryLine(t))
	}
	return oracle.Prompt{System: system, User: "High-priority tickets:\n" + lines.String()}
}

func ticketSummaryLine(t domain.Ticket) string {
	return fmt.Sprintf("[%s, %s] %s\n", t.Sentiment, t.Priority, summaryOrContent(t))
}

func summaryOrContent(t domain.Ticket) string {
	if s := strings.TrimSpace(t.Summary); s != "" {
		return s
	}
	return truncate(t.Content, 150)
}

func clampPercent(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// normalizeSentiment tolerates small drift from 100 and rescales anything
// beyond the tolerance so the published breakdown always sums to ~100.
func normalizeSentiment(positive, neutral, negative float64) domain.SentimentBreakdown {
	sum := positive + neutral + negative
	if sum > 0 && math.Abs(sum-100) > sentimentSumTolerance {
		scale := 100 / sum
		positive = math.Round(positive*scale*10) / 10
		neutral = math.Round(neutral*scale*10) / 10
		negative = math.Round(negative*scale*10) / 10
	}
	return domain.SentimentBreakdown{Positive: positive, Neutral: neutral, Negative: negative}
}
