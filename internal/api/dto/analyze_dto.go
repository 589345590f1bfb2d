package dto

// AnalyzeTicketRequest payload.
type AnalyzeTicketRequest struct {
	Text string `json:"text"`
}

// AnalyzeTicketResponse mirrors the single-ticket analysis result.
type AnalyzeTicketResponse struct {
	Category       string `json:"category"`
	SuggestedReply string `json:"suggestedReply"`
}

// AnalyzeBatchRequest payload. Text holds multiple tickets separated by a
// "---" line.
type AnalyzeBatchRequest struct {
	Text string `json:"text"`
}

// BatchTicketResponse is one per-ticket batch outcome.
type BatchTicketResponse struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Sentiment string `json:"sentiment"`
}

// ExampleTicketResponse is one canned "use example" ticket.
type ExampleTicketResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// SuggestReplyResponse is the reply-cache result for one ticket.
type SuggestReplyResponse struct {
	TicketID string `json:"ticketId"`
	Text     string `json:"text"`
}
