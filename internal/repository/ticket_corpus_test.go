package repository

import (
	"testing"
	"time"

	"github.com/spec-kit/ticket-intel/internal/domain"
)

func testTicket(id, name, content string) domain.Ticket {
	return domain.Ticket{
		ID:           id,
		CustomerName: name,
		Content:      content,
		Category:     domain.CategoryOrderStatus,
		Priority:     domain.PriorityMedium,
		Sentiment:    domain.SentimentNeutral,
		Status:       domain.StatusOpen,
		Date:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddSkipsDuplicateIDs(t *testing.T) {
	corpus := NewTicketCorpus()
	corpus.Add(testTicket("t1", "Alice", "original"))
	corpus.Add(testTicket("t1", "Mallory", "overwrite attempt"))

	if corpus.Len() != 1 {
		t.Fatalf("expected 1 ticket, got %d", corpus.Len())
	}
	stored, _ := corpus.GetByID("t1")
	if stored.Content != "original" {
		t.Fatalf("duplicate add must not overwrite, got %q", stored.Content)
	}
}

func TestSearchIntersectsFilters(t *testing.T) {
	corpus := NewTicketCorpus()

	a := testTicket("TKT-001", "Alice", "my refund is late")
	a.Priority = domain.PriorityHigh
	a.Sentiment = domain.SentimentNegative

	b := testTicket("TKT-002", "Bob", "refund processed, thanks")
	b.Priority = domain.PriorityLow
	b.Sentiment = domain.SentimentPositive

	c := testTicket("TKT-003", "Carol", "cannot log in")
	c.Priority = domain.PriorityHigh
	c.Sentiment = domain.SentimentNegative

	corpus.Add(a, b, c)

	tests := []struct {
		name   string
		filter SearchFilter
		want   []string
	}{
		{"no filters", SearchFilter{}, []string{"TKT-001", "TKT-002", "TKT-003"}},
		{"all wildcards", SearchFilter{Priority: FilterAll, Sentiment: FilterAll, Status: FilterAll}, []string{"TKT-001", "TKT-002", "TKT-003"}},
		{"query only", SearchFilter{Query: "refund"}, []string{"TKT-001", "TKT-002"}},
		{"query case-insensitive", SearchFilter{Query: "REFUND"}, []string{"TKT-001", "TKT-002"}},
		{"query matches id", SearchFilter{Query: "tkt-003"}, []string{"TKT-003"}},
		{"query matches customer", SearchFilter{Query: "alice"}, []string{"TKT-001"}},
		{"priority only", SearchFilter{Priority: "High"}, []string{"TKT-001", "TKT-003"}},
		{"intersection", SearchFilter{Query: "refund", Priority: "High", Sentiment: "Negative"}, []string{"TKT-001"}},
		{"contradiction", SearchFilter{Query: "refund", Priority: "High", Sentiment: "Positive"}, []string{}},
		{"no match", SearchFilter{Query: "nonexistent"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := corpus.Search(tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d results, got %d", len(tt.want), len(got))
			}
			for i, ticket := range got {
				if ticket.ID != tt.want[i] {
					t.Errorf("result %d: expected %s, got %s", i, tt.want[i], ticket.ID)
				}
			}
		})
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	corpus := NewTicketCorpus()
	corpus.Add(testTicket("t1", "Alice", "hello"))

	filter := SearchFilter{Query: "hello"}
	first := corpus.Search(filter)
	second := corpus.Search(filter)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("repeat search must return identical results, got %d then %d", len(first), len(second))
	}
	if corpus.Len() != 1 {
		t.Fatal("search must not mutate the corpus")
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	corpus := NewTicketCorpus()
	for i, day := range []int{3, 1, 5, 2, 4} {
		ticket := testTicket(string(rune('a'+i)), "X", "body")
		ticket.Date = time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
		corpus.Add(ticket)
	}

	recent := corpus.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Date.After(recent[i-1].Date) {
			t.Fatalf("tickets out of order: %v before %v", recent[i-1].Date, recent[i].Date)
		}
	}
	if recent[0].Date.Day() != 5 {
		t.Fatalf("expected newest ticket first, got day %d", recent[0].Date.Day())
	}
}

func TestByPriorityMatchesAny(t *testing.T) {
	corpus := NewTicketCorpus()
	high := testTicket("h", "A", "x")
	high.Priority = domain.PriorityHigh
	urgent := testTicket("u", "B", "y")
	urgent.Priority = domain.PriorityUrgent
	low := testTicket("l", "C", "z")
	low.Priority = domain.PriorityLow
	corpus.Add(high, urgent, low)

	got := corpus.ByPriority(domain.PriorityHigh, domain.PriorityUrgent)
	if len(got) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(got))
	}
}

func TestByCategory(t *testing.T) {
	corpus := NewTicketCorpus()
	bug := testTicket("b", "A", "crash")
	bug.Category = domain.CategoryTechnicalBug
	corpus.Add(testTicket("o", "B", "order"), bug)

	got := corpus.ByCategory(domain.CategoryTechnicalBug)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if len(corpus.ByCategory(domain.CategoryFeedback)) != 0 {
		t.Fatal("expected empty result for unused category")
	}
}
