package domain

import (
	"strings"
	"time"
)

// Category is the closed ticket taxonomy. Oracle output is mapped into it
// with ParseCategory; anything unrecognized becomes CategoryUnknown.
type Category string

const (
	CategoryOrderStatus    Category = "Order Status"
	CategoryPaymentIssue   Category = "Payment Issue"
	CategoryRefundReturn   Category = "Refund & Return"
	CategoryTechnicalBug   Category = "Technical Bug"
	CategoryAccountIssue   Category = "Account Issue"
	CategoryProductInquiry Category = "Product Inquiry"
	CategoryFeedback       Category = "Feedback & Suggestion"
	CategoryUnknown        Category = "Unknown"
)

// Categories returns the classifiable categories, excluding the sentinel.
func Categories() []Category {
	return []Category{
		CategoryOrderStatus,
		CategoryPaymentIssue,
		CategoryRefundReturn,
		CategoryTechnicalBug,
		CategoryAccountIssue,
		CategoryProductInquiry,
		CategoryFeedback,
	}
}

// ParseCategory maps an arbitrary external string to a Category. Total:
// every input yields a member of the enumeration.
func ParseCategory(s string) Category {
	needle := normalizeEnumToken(s)
	for _, c := range Categories() {
		if normalizeEnumToken(string(c)) == needle {
			return c
		}
	}
	return CategoryUnknown
}

// Priority enumerates SLA urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Priorities returns all priority values.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// ParsePriority maps an arbitrary string to a Priority, defaulting to Medium.
func ParsePriority(s string) Priority {
	needle := normalizeEnumToken(s)
	for _, p := range Priorities() {
		if normalizeEnumToken(string(p)) == needle {
			return p
		}
	}
	return PriorityMedium
}

// Sentiment enumerates customer tone.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Sentiments returns all sentiment values.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}
}

// ParseSentiment maps an arbitrary string to a Sentiment, defaulting to Neutral.
func ParseSentiment(s string) Sentiment {
	needle := normalizeEnumToken(s)
	for _, v := range Sentiments() {
		if normalizeEnumToken(string(v)) == needle {
			return v
		}
	}
	return SentimentNeutral
}

// Status enumerates ticket lifecycle states.
type Status string

const (
	StatusOpen     Status = "Open"
	StatusResolved Status = "Resolved"
	StatusClosed   Status = "Closed"
)

// Statuses returns all status values.
func Statuses() []Status {
	return []Status{StatusOpen, StatusResolved, StatusClosed}
}

// ParseStatus maps an arbitrary string to a Status, defaulting to Open.
func ParseStatus(s string) Status {
	needle := normalizeEnumToken(s)
	for _, v := range Statuses() {
		if normalizeEnumToken(string(v)) == needle {
			return v
		}
	}
	return StatusOpen
}

// CustomerType segments the requester.
type CustomerType string

const (
	CustomerTypeNew       CustomerType = "New"
	CustomerTypeReturning CustomerType = "Returning"
	CustomerTypePremium   CustomerType = "Premium"
)

// ResolvedBy records who closed the loop on a ticket.
type ResolvedBy string

const (
	ResolvedByAI    ResolvedBy = "AI"
	ResolvedByAgent ResolvedBy = "Agent"
)

// Ticket is one customer support request plus its enriched classification
// fields. Content is immutable once ingested; the enriched fields are set
// exactly once by the classifier.
type Ticket struct {
	ID              string
	CustomerName    string
	CustomerProfile string
	CustomerType    CustomerType
	Date            time.Time
	Content         string

	Category   Category
	Priority   Priority
	Sentiment  Sentiment
	Status     Status
	Summary    string
	ResolvedBy ResolvedBy
}

func normalizeEnumToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
