package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-intel/internal/repository"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	corpus      *repository.TicketCorpus
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, corpus *repository.TicketCorpus) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, corpus: corpus}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness. The corpus is in-process, so readiness
// is the service being up with its store initialized.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ready",
		"dependencies": fiber.Map{
			"corpus_tickets": h.corpus.Len(),
		},
	})
}
