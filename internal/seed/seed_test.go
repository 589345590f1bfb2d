package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/ticket-intel/internal/domain"
)

func TestGenerateTicketsEnumSafe(t *testing.T) {
	tickets := GenerateTickets(100)
	if len(tickets) != 100 {
		t.Fatalf("expected 100 tickets, got %d", len(tickets))
	}

	oldest := time.Now().AddDate(0, 0, -91)
	for i, ticket := range tickets {
		if !strings.HasPrefix(ticket.ID, "TKT-") {
			t.Fatalf("ticket %d: unexpected id %q", i, ticket.ID)
		}
		if domain.ParseCategory(string(ticket.Category)) == domain.CategoryUnknown {
			t.Fatalf("ticket %d: category %q not in taxonomy", i, ticket.Category)
		}
		if ticket.Content == "" || ticket.Summary == "" {
			t.Fatalf("ticket %d: content and summary must be populated", i)
		}
		if ticket.Date.Before(oldest) || ticket.Date.After(time.Now()) {
			t.Fatalf("ticket %d: date %v outside the 90-day window", i, ticket.Date)
		}
	}
}

func TestExampleTickets(t *testing.T) {
	examples := ExampleTickets()
	if len(examples) != 3 {
		t.Fatalf("expected 3 examples, got %d", len(examples))
	}
	for i, ex := range examples {
		if ex.Title == "" || ex.Text == "" {
			t.Fatalf("example %d: title and text required", i)
		}
	}
}
