package dto

import (
	"github.com/spec-kit/ticket-intel/internal/domain"
)

// TicketResponse is the UI-facing ticket shape.
type TicketResponse struct {
	ID              string `json:"id"`
	CustomerName    string `json:"customerName"`
	CustomerProfile string `json:"customerProfile"`
	CustomerType    string `json:"customerType"`
	Date            string `json:"date"`
	Content         string `json:"content"`
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	Sentiment       string `json:"sentiment"`
	Status          string `json:"status"`
	Summary         string `json:"summary"`
	ResolvedBy      string `json:"resolvedBy"`
}

// FromTicket maps a domain ticket to its response shape.
func FromTicket(t domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:              t.ID,
		CustomerName:    t.CustomerName,
		CustomerProfile: t.CustomerProfile,
		CustomerType:    string(t.CustomerType),
		Date:            t.Date.Format("2006-01-02"),
		Content:         t.Content,
		Category:        string(t.Category),
		Priority:        string(t.Priority),
		Sentiment:       string(t.Sentiment),
		Status:          string(t.Status),
		Summary:         t.Summary,
		ResolvedBy:      string(t.ResolvedBy),
	}
}
