package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/spec-kit/ticket-intel/internal/domain"
)

// FilterAll is the wildcard value for the exact-match filter dimensions.
const FilterAll = "All"

// SearchFilter describes one query over the corpus. Query matches as a
// case-insensitive substring of id, customer name, or content; the other
// dimensions are exact matches unless set to FilterAll (or left empty).
type SearchFilter struct {
	Query     string
	Priority  string
	Sentiment string
	Status    string
}

// TicketCorpus is the session-scoped in-memory ticket store. It is written
// only at ingestion time and read by every insight computation and the
// query engine; stored tickets are never mutated.
type TicketCorpus struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
	byID    map[string]int
}

// NewTicketCorpus constructs an empty corpus.
func NewTicketCorpus() *TicketCorpus {
	return &TicketCorpus{byID: make(map[string]int)}
}

// Add appends tickets to the corpus. A ticket whose id is already present
// is skipped; ingestion never overwrites enriched fields.
func (c *TicketCorpus) Add(tickets ...domain.Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tickets {
		if _, exists := c.byID[t.ID]; exists {
			continue
		}
		c.byID[t.ID] = len(c.tickets)
		c.tickets = append(c.tickets, t)
	}
}

// Len reports the number of stored tickets.
func (c *TicketCorpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tickets)
}

// GetByID returns the ticket with the given id.
func (c *TicketCorpus) GetByID(id string) (domain.Ticket, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return domain.Ticket{}, false
	}
	return c.tickets[idx], true
}

// All returns a copy of every stored ticket in ingestion order.
func (c *TicketCorpus) All() []domain.Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Ticket, len(c.tickets))
	copy(out, c.tickets)
	return out
}

// ByCategory returns the tickets assigned to one category.
func (c *TicketCorpus) ByCategory(category domain.Category) []domain.Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Ticket, 0)
	for _, t := range c.tickets {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// ByPriority returns the tickets matching any of the given priorities.
func (c *TicketCorpus) ByPriority(priorities ...domain.Priority) []domain.Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Ticket, 0)
	for _, t := range c.tickets {
		for _, p := range priorities {
			if t.Priority == p {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Recent returns up to n tickets ordered by date, newest first.
func (c *TicketCorpus) Recent(n int) []domain.Ticket {
	c.mu.RLock()
	sorted := make([]domain.Ticket, len(c.tickets))
	copy(sorted, c.tickets)
	c.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Search applies the pure query predicate: substring match AND the
// intersection of all exact-match filters. Idempotent and side-effect-free.
func (c *TicketCorpus) Search(filter SearchFilter) []domain.Ticket {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Ticket, 0)
	needle := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, t := range c.tickets {
		if !matchesQuery(t, needle) {
			continue
		}
		if !matchesDimension(string(t.Priority), filter.Priority) {
			continue
		}
		if !matchesDimension(string(t.Sentiment), filter.Sentiment) {
			continue
		}
		if !matchesDimension(string(t.Status), filter.Status) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesQuery(t domain.Ticket, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.ID), needle) ||
		strings.Contains(strings.ToLower(t.CustomerName), needle) ||
		strings.Contains(strings.ToLower(t.Content), needle)
}

func matchesDimension(value, selected string) bool {
	if selected == "" || selected == FilterAll {
		return true
	}
	return value == selected
}
