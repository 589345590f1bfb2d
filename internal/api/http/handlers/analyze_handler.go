package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-intel/internal/api/dto"
	"github.com/spec-kit/ticket-intel/internal/seed"
	"github.com/spec-kit/ticket-intel/internal/service"
	"github.com/spec-kit/ticket-intel/pkg/util"
)

// AnalyzeHandler manages ticket analysis endpoints.
type AnalyzeHandler struct {
	classifier *service.Classifier
}

// NewAnalyzeHandler constructs handler.
func NewAnalyzeHandler(classifier *service.Classifier) *AnalyzeHandler {
	return &AnalyzeHandler{classifier: classifier}
}

// Analyze POST /api/tickets/analyze.
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return util.NewValidationError("text required", nil)
	}

	analysis, err := h.classifier.Analyze(c.UserContext(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AnalyzeTicketResponse{
		Category:       string(analysis.Category),
		SuggestedReply: analysis.SuggestedReply,
	}})
}

// AnalyzeBatch POST /api/tickets/analyze-batch. The text body holds one or
// more tickets separated by a "---" line; each classified ticket is added
// to the corpus.
func (h *AnalyzeHandler) AnalyzeBatch(c *fiber.Ctx) error {
	var req dto.AnalyzeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	units := service.SplitBatch(req.Text)
	if len(units) == 0 {
		return util.NewValidationError("no ticket text found", nil)
	}

	tickets := h.classifier.Ingest(c.UserContext(), units)
	items := make([]dto.BatchTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.BatchTicketResponse{
			ID:        t.ID,
			Summary:   t.Summary,
			Category:  string(t.Category),
			Priority:  string(t.Priority),
			Sentiment: string(t.Sentiment),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": items})
}

// Examples GET /api/examples.
func (h *AnalyzeHandler) Examples(c *fiber.Ctx) error {
	examples := seed.ExampleTickets()
	items := make([]dto.ExampleTicketResponse, 0, len(examples))
	for _, ex := range examples {
		items = append(items, dto.ExampleTicketResponse{Title: ex.Title, Text: ex.Text})
	}
	return c.JSON(fiber.Map{"data": items})
}
