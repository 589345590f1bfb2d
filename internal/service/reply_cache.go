package service

import (
	"context"
	"sync"

	"github.com/spec-kit/ticket-intel/internal/repository"
	"github.com/spec-kit/ticket-intel/pkg/util"
)

// ReplyState is the externally visible cache state for one ticket id.
type ReplyState struct {
	Text    string
	Loading bool
}

type replyEntry struct {
	done chan struct{}
	text string
	err  error
}

// ReplyCache memoizes suggested replies per ticket id. The first request
// for an id triggers exactly one oracle-backed generation; concurrent
// requests for the same id wait on that result, and requests for different
// ids never block one another. Entries are merged by key under one mutex,
// never by replacing the map wholesale.
type ReplyCache struct {
	mu         sync.Mutex
	entries    map[string]*replyEntry
	classifier *Classifier
	corpus     *repository.TicketCorpus
}

// NewReplyCache constructs the cache.
func NewReplyCache(classifier *Classifier, corpus *repository.TicketCorpus) *ReplyCache {
	return &ReplyCache{
		entries:    make(map[string]*replyEntry),
		classifier: classifier,
		corpus:     corpus,
	}
}

// SuggestReply returns the cached reply for the ticket, generating it on
// first request. A resolved id is a cache hit and never re-invokes the
// oracle until Invalidate is called.
func (c *ReplyCache) SuggestReply(ctx context.Context, ticketID string) (string, error) {
	ticket, ok := c.corpus.GetByID(ticketID)
	if !ok {
		return "", util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}

	c.mu.Lock()
	if e, exists := c.entries[ticketID]; exists {
		c.mu.Unlock()
		select {
		case <-e.done:
			return e.text, e.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	e := &replyEntry{done: make(chan struct{})}
	c.entries[ticketID] = e
	c.mu.Unlock()

	text, err := c.classifier.SuggestReply(ctx, ticket.Content)

	c.mu.Lock()
	e.text, e.err = text, err
	if err != nil && c.entries[ticketID] == e {
		// failed generations are not memoized; a later request may retry
		delete(c.entries, ticketID)
	}
	c.mu.Unlock()
	close(e.done)

	return text, err
}

// State reports the cache state for one id without triggering generation.
func (c *ReplyCache) State(ticketID string) (ReplyState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ticketID]
	if !ok {
		return ReplyState{}, false
	}
	select {
	case <-e.done:
		return ReplyState{Text: e.text}, true
	default:
		return ReplyState{Loading: true}, true
	}
}

// Invalidate drops a resolved entry so the next request regenerates it.
// In-flight entries are left alone to preserve at-most-one-in-flight per id.
func (c *ReplyCache) Invalidate(ticketID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ticketID]
	if !ok {
		return
	}
	select {
	case <-e.done:
		delete(c.entries, ticketID)
	default:
	}
}
