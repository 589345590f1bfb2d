package events

import (
	"time"

	"github.com/spec-kit/ticket-intel/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketClassified EventType = "ticket_classified"
	EventBatchAnalyzed    EventType = "batch_analyzed"
	EventAlertRaised      EventType = "alert_raised"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketClassifiedPayload payload.
type TicketClassifiedPayload struct {
	TicketID  string           `json:"ticket_id"`
	Category  domain.Category  `json:"category"`
	Priority  domain.Priority  `json:"priority"`
	Sentiment domain.Sentiment `json:"sentiment"`
}

// BatchAnalyzedPayload payload.
type BatchAnalyzedPayload struct {
	Units      int `json:"units"`
	Classified int `json:"classified"`
}

// AlertRaisedPayload payload.
type AlertRaisedPayload struct {
	Alert domain.Alert `json:"alert"`
}
