package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-intel/internal/api/dto"
	"github.com/spec-kit/ticket-intel/internal/repository"
	"github.com/spec-kit/ticket-intel/internal/service"
	"github.com/spec-kit/ticket-intel/pkg/util"
)

// TicketsHandler manages corpus query and reply endpoints.
type TicketsHandler struct {
	corpus  *repository.TicketCorpus
	replies *service.ReplyCache
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(corpus *repository.TicketCorpus, replies *service.ReplyCache) *TicketsHandler {
	return &TicketsHandler{corpus: corpus, replies: replies}
}

// List GET /api/tickets. Filters combine as an intersection; "All" or an
// absent value leaves a dimension unconstrained.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	filter := repository.SearchFilter{
		Query:     c.Query("q"),
		Priority:  c.Query("priority"),
		Sentiment: c.Query("sentiment"),
		Status:    c.Query("status"),
	}
	tickets := h.corpus.Search(filter)
	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.FromTicket(t))
	}
	return c.JSON(fiber.Map{"data": items, "total": len(items)})
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	ticket, ok := h.corpus.GetByID(id)
	if !ok {
		return util.NewNotFound("ticket", map[string]any{"ticket_id": id})
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// SuggestReply POST /api/tickets/:id/suggest-reply. The first call for a
// ticket generates the reply; repeat calls return the cached text.
func (h *TicketsHandler) SuggestReply(c *fiber.Ctx) error {
	id := c.Params("id")
	text, err := h.replies.SuggestReply(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SuggestReplyResponse{TicketID: id, Text: text}})
}

// ReplyState GET /api/tickets/:id/suggest-reply. Reports the cached reply
// without triggering generation.
func (h *TicketsHandler) ReplyState(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.corpus.GetByID(id); !ok {
		return util.NewNotFound("ticket", map[string]any{"ticket_id": id})
	}
	state, ok := h.replies.State(id)
	if !ok {
		return c.JSON(fiber.Map{"data": fiber.Map{"ticketId": id, "cached": false}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"ticketId": id,
		"cached":   !state.Loading,
		"loading":  state.Loading,
		"text":     state.Text,
	}})
}
