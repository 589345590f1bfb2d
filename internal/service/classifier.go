package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intel/internal/domain"
	"github.com/spec-kit/ticket-intel/internal/events"
	"github.com/spec-kit/ticket-intel/internal/oracle"
	"github.com/spec-kit/ticket-intel/internal/repository"
	"github.com/spec-kit/ticket-intel/pkg/util"
)

const (
	// noReplyPlaceholder substitutes a reply the oracle omitted.
	noReplyPlaceholder = "No reply could be generated."
	// replyUnavailableText substitutes a reply when the oracle call failed.
	replyUnavailableText = "We're sorry, a suggested reply is not available right now. A support agent will follow up with you shortly."

	// batchChunkSize caps the number of tickets sent in one oracle call so
	// prompt size stays bounded for large batches.
	batchChunkSize = 25

	batchSeparator = "\n---\n"
)

// Classifier turns raw ticket text into enriched, enum-safe classification
// results via the oracle.
type Classifier struct {
	oracle     oracle.Client
	corpus     *repository.TicketCorpus
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ClassifierDependencies bundles collaborators for the classifier.
type ClassifierDependencies struct {
	Oracle     oracle.Client
	Corpus     *repository.TicketCorpus
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewClassifier constructs the service.
func NewClassifier(deps ClassifierDependencies) *Classifier {
	return &Classifier{
		oracle:     deps.Oracle,
		corpus:     deps.Corpus,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// TicketAnalysis is the single-ticket classification result.
type TicketAnalysis struct {
	Category       domain.Category
	SuggestedReply string
}

type analyzePayload struct {
	Category       string `json:"category"`
	SuggestedReply string `json:"suggestedReply"`
}

// Analyze classifies one ticket's text and drafts a reply. Blank input is
// rejected before any oracle call. Oracle failure degrades to the Unknown
// category and a fixed apology reply; the returned category is always a
// member of the enumeration.
func (s *Classifier) Analyze(ctx context.Context, ticketText string) (*TicketAnalysis, error) {
	if strings.TrimSpace(ticketText) == "" {
		return nil, util.NewValidationError("ticket text required", nil)
	}

	raw, err := s.oracle.Complete(ctx, analyzeTicketPrompt(ticketText))
	if err != nil {
		s.logger.Warn("ticket analysis degraded", zap.Error(err))
		return &TicketAnalysis{Category: domain.CategoryUnknown, SuggestedReply: replyUnavailableText}, nil
	}

	var payload analyzePayload
	if err := oracle.DecodeJSON(raw, &payload); err != nil {
		s.logger.Warn("ticket analysis response rejected", zap.Error(err))
		return &TicketAnalysis{Category: domain.CategoryUnknown, SuggestedReply: replyUnavailableText}, nil
	}

	reply := strings.TrimSpace(payload.SuggestedReply)
	if reply == "" {
		reply = noReplyPlaceholder
	}
	return &TicketAnalysis{
		Category:       domain.ParseCategory(payload.Category),
		SuggestedReply: reply,
	}, nil
}

// SuggestReply is the reduced form of Analyze returning only reply text.
// Oracle failure degrades to a fixed apology string, never an error.
func (s *Classifier) SuggestReply(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", util.NewValidationError("ticket content required", nil)
	}

	raw, err := s.oracle.Complete(ctx, suggestReplyPrompt(content))
	if err != nil {
		s.logger.Warn("reply suggestion degraded", zap.Error(err))
		return replyUnavailableText, nil
	}

	var payload struct {
		SuggestedReply string `json:"suggestedReply"`
	}
	if err := oracle.DecodeJSON(raw, &payload); err != nil {
		s.logger.Warn("reply suggestion response rejected", zap.Error(err))
		return replyUnavailableText, nil
	}
	reply := strings.TrimSpace(payload.SuggestedReply)
	if reply == "" {
		return noReplyPlaceholder, nil
	}
	return reply, nil
}

// BatchUnit is one ticket awaiting batch classification.
type BatchUnit struct {
	ID      string
	Content string
}

// BatchResult is the per-ticket outcome of a batch classification.
type BatchResult struct {
	ID        string
	Summary   string
	Category  domain.Category
	Priority  domain.Priority
	Sentiment domain.Sentiment
}

type batchPayloadItem struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Sentiment string `json:"sentiment"`
}

// SplitBatch splits a combined text blob on the literal "---" separator
// line, preserving order and assigning one generated id per unit.
func SplitBatch(text string) []BatchUnit {
	units := make([]BatchUnit, 0)
	for _, part := range strings.Split(text, batchSeparator) {
		content := strings.TrimSpace(part)
		if content == "" {
			continue
		}
		units = append(units, BatchUnit{
			ID:      "ticket-" + uuid.NewString(),
			Content: content,
		})
	}
	return units
}

// AnalyzeBatch classifies the given units, one oracle call per chunk of at
// most batchChunkSize. Results come back in input order, one per input id;
// ids the oracle failed to cover fall back to safe enum defaults. If every
// chunk fails the result set is empty: callers must treat "empty" as
// "nothing available", not "no tickets existed".
func (s *Classifier) AnalyzeBatch(ctx context.Context, units []BatchUnit) []BatchResult {
	if len(units) == 0 {
		return []BatchResult{}
	}

	var chunks [][]BatchUnit
	for start := 0; start < len(units); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(units) {
			end = len(units)
		}
		chunks = append(chunks, units[start:end])
	}

	type chunkResult struct {
		items map[string]batchPayloadItem
		err   error
	}
	results := make([]chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(idx int, chunk []BatchUnit) {
			defer wg.Done()
			items, err := s.analyzeChunk(ctx, chunk)
			results[idx] = chunkResult{items: items, err: err}
		}(i, chunk)
	}
	wg.Wait()

	byID := make(map[string]batchPayloadItem, len(units))
	failed := 0
	for i, r := range results {
		if r.err != nil {
			failed++
			s.logger.Warn("batch chunk failed", zap.Int("chunk", i), zap.Error(r.err))
			continue
		}
		for id, item := range r.items {
			byID[id] = item
		}
	}
	if failed == len(chunks) {
		return []BatchResult{}
	}

	out := make([]BatchResult, 0, len(units))
	for _, unit := range units {
		item, ok := byID[unit.ID]
		if !ok {
			out = append(out, BatchResult{
				ID:        unit.ID,
				Summary:   truncate(unit.Content, 100),
				Category:  domain.CategoryUnknown,
				Priority:  domain.PriorityMedium,
				Sentiment: domain.SentimentNeutral,
			})
			continue
		}
		summary := strings.TrimSpace(item.Summary)
		if summary == "" {
			summary = truncate(unit.Content, 100)
		}
		out = append(out, BatchResult{
			ID:        unit.ID,
			Summary:   summary,
			Category:  domain.ParseCategory(item.Category),
			Priority:  domain.ParsePriority(item.Priority),
			Sentiment: domain.ParseSentiment(item.Sentiment),
		})
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventBatchAnalyzed,
		Payload: events.BatchAnalyzedPayload{Units: len(units), Classified: len(byID)},
	})
	return out
}

func (s *Classifier) analyzeChunk(ctx context.Context, chunk []BatchUnit) (map[string]batchPayloadItem, error) {
	raw, err := s.oracle.Complete(ctx, analyzeBatchPrompt(chunk))
	if err != nil {
		return nil, err
	}
	var items []batchPayloadItem
	if err := oracle.DecodeJSON(raw, &items); err != nil {
		return nil, err
	}
	byID := make(map[string]batchPayloadItem, len(items))
	for _, item := range items {
		byID[strings.TrimSpace(item.ID)] = item
	}
	return byID, nil
}

// Ingest classifies the units and appends the resulting tickets to the
// corpus. Tickets enter the corpus exactly once; the enriched fields are
// never rewritten afterwards.
func (s *Classifier) Ingest(ctx context.Context, units []BatchUnit) []domain.Ticket {
	analyses := s.AnalyzeBatch(ctx, units)
	if len(analyses) == 0 {
		return []domain.Ticket{}
	}

	contentByID := make(map[string]string, len(units))
	for _, unit := range units {
		contentByID[unit.ID] = unit.Content
	}

	now := time.Now()
	tickets := make([]domain.Ticket, 0, len(analyses))
	for _, a := range analyses {
		ticket := domain.Ticket{
			ID:           a.ID,
			CustomerName: "Unknown",
			CustomerType: domain.CustomerTypeNew,
			Date:         now,
			Content:      contentByID[a.ID],
			Category:     a.Category,
			Priority:     a.Priority,
			Sentiment:    a.Sentiment,
			Status:       domain.StatusOpen,
			Summary:      a.Summary,
			ResolvedBy:   domain.ResolvedByAgent,
		}
		tickets = append(tickets, ticket)
		s.publishEvent(ctx, events.Event{
			Type: events.EventTicketClassified,
			Payload: events.TicketClassifiedPayload{
				TicketID:  ticket.ID,
				Category:  ticket.Category,
				Priority:  ticket.Priority,
				Sentiment: ticket.Sentiment,
			},
		})
	}
	s.corpus.Add(tickets...)
	return tickets
}

func (s *Classifier) publishEvent(ctx context.Context, event events.Event) {
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

func analyzeTicketPrompt(ticketText string) oracle.Prompt {
	system := fmt.Sprintf(`You are an expert customer support agent assistant. Analyze the customer support ticket you are given.
First, classify it into exactly one of the following categories: %s.
Second, write a professional, empathetic, and helpful draft reply to the customer. Address the customer directly.

Respond with JSON only (no markdown):
{"category": "...", "suggestedReply": "..."}`, joinCategories())

	user := "Customer Ticket:\n---\n" + ticketText + "\n---"
	return oracle.Prompt{System: system, User: user}
}

func suggestReplyPrompt(content string) oracle.Prompt {
	system := `You are an expert customer support agent assistant. Write a professional, empathetic, and helpful draft reply to the customer ticket you are given. Address the customer directly.

Respond with JSON only (no markdown):
{"suggestedReply": "..."}`

	user := "Customer Ticket:\n---\n" + content + "\n---"
	return oracle.Prompt{System: system, User: user}
}

func analyzeBatchPrompt(units []BatchUnit) oracle.Prompt {
	system := fmt.Sprintf(`You analyze customer support tickets in bulk. For each ticket:
- write a one-sentence summary
- choose category from: %s
- choose priority from: %s
- choose sentiment from: %s

Respond with JSON only (no markdown), one entry per ticket id:
[{"id": "...", "summary": "...", "category": "...", "priority": "...", "sentiment": "..."}, ...]`,
		joinCategories(), joinPriorities(), joinSentiments())

	var lines strings.Builder
	for _, unit := range units {
		lines.WriteString("ID:" + unit.ID + "\n")
		lines.WriteString(strings.TrimSpace(unit.Content) + "\n---\n")
	}
	return oracle.Prompt{System: system, User: "Analyze these tickets:\n\n" + lines.String()}
}

func joinCategories() string {
	values := domain.Categories()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinPriorities() string {
	values := domain.Priorities()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinSentiments() string {
	values := domain.Sentiments()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
