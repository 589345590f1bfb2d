package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-intel/internal/api/http"
	"github.com/spec-kit/ticket-intel/internal/api/http/handlers"
	"github.com/spec-kit/ticket-intel/internal/domain"
	"github.com/spec-kit/ticket-intel/internal/observability"
	"github.com/spec-kit/ticket-intel/internal/oracle"
	"github.com/spec-kit/ticket-intel/internal/repository"
	"github.com/spec-kit/ticket-intel/internal/service"
)

type scriptedOracle struct {
	mu    sync.Mutex
	text  string
	calls int
}

func (o *scriptedOracle) Complete(context.Context, oracle.Prompt) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	return o.text, nil
}

func newTestApp(o oracle.Client, corpus *repository.TicketCorpus) *fiber.App {
	logger := zap.NewNop()
	classifier := service.NewClassifier(service.ClassifierDependencies{
		Oracle: o,
		Corpus: corpus,
		Logger: logger,
	})
	insights := service.NewInsights(service.InsightsDependencies{
		Oracle: o,
		Corpus: corpus,
		Logger: logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler("test", "dev", corpus),
		Analyze:  handlers.NewAnalyzeHandler(classifier),
		Tickets:  handlers.NewTicketsHandler(corpus, service.NewReplyCache(classifier, corpus)),
		Insights: handlers.NewInsightsHandler(service.NewDashboard(insights, logger)),
	})
	return app
}

func seedTicket(id, content string, priority domain.Priority) domain.Ticket {
	return domain.Ticket{
		ID:        id,
		Content:   content,
		Category:  domain.CategoryOrderStatus,
		Priority:  priority,
		Sentiment: domain.SentimentNeutral,
		Status:    domain.StatusOpen,
		Date:      time.Now(),
	}
}

func TestListTicketsFiltered(t *testing.T) {
	corpus := repository.NewTicketCorpus()
	corpus.Add(
		seedTicket("t1", "my refund is late", domain.PriorityHigh),
		seedTicket("t2", "login broken", domain.PriorityLow),
	)
	app := newTestApp(&scriptedOracle{}, corpus)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/tickets?q=refund&priority=High", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Total != 1 || len(body.Data) != 1 || body.Data[0].ID != "t1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAnalyzeValidationEnvelope(t *testing.T) {
	app := newTestApp(&scriptedOracle{}, repository.NewTicketCorpus())

	req := httptest.NewRequest("POST", "/api/tickets/analyze", strings.NewReader(`{"text": "   "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
}

func TestSuggestReplyUnknownTicketEnvelope(t *testing.T) {
	app := newTestApp(&scriptedOracle{}, repository.NewTicketCorpus())

	resp, err := app.Test(httptest.NewRequest("POST", "/api/tickets/missing/suggest-reply", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAnalyzeReturnsClassification(t *testing.T) {
	o := &scriptedOracle{text: `{"category": "Refund & Return", "suggestedReply": "We'll process it."}`}
	app := newTestApp(o, repository.NewTicketCorpus())

	req := httptest.NewRequest("POST", "/api/tickets/analyze", strings.NewReader(`{"text": "item arrived damaged"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Data struct {
			Category       string `json:"category"`
			SuggestedReply string `json:"suggestedReply"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Data.Category != "Refund & Return" || body.Data.SuggestedReply != "We'll process it." {
		t.Fatalf("unexpected body: %+v", body.Data)
	}
}

func TestAnalyzeBatchIngestsSplitUnits(t *testing.T) {
	// an empty oracle array still yields one defaulted result per input unit
	o := &scriptedOracle{text: `[]`}
	corpus := repository.NewTicketCorpus()
	app := newTestApp(o, corpus)

	req := httptest.NewRequest("POST", "/api/tickets/analyze-batch", strings.NewReader(`{"text": "first ticket\n---\nsecond ticket"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var body struct {
		Data []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 batch results, got %d", len(body.Data))
	}
	for i, item := range body.Data {
		if item.Category != string(domain.CategoryUnknown) {
			t.Errorf("result %d: expected Unknown default, got %s", i, item.Category)
		}
	}
	if corpus.Len() != 2 {
		t.Fatalf("batch must be ingested into the corpus, got %d tickets", corpus.Len())
	}
}

func TestCategoryInsightsRejectsUnknownCategory(t *testing.T) {
	app := newTestApp(&scriptedOracle{}, repository.NewTicketCorpus())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/categories/NotACategory/insights", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestExamplesEndpoint(t *testing.T) {
	app := newTestApp(&scriptedOracle{}, repository.NewTicketCorpus())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/examples", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Data []struct {
			Title string `json:"title"`
			Text  string `json:"text"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Data) != 3 {
		t.Fatalf("expected 3 examples, got %d", len(body.Data))
	}
}
