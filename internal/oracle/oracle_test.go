package oracle

import (
	"errors"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Category string `json:"category"`
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain json", `{"category": "Technical Bug"}`, "Technical Bug", false},
		{"json fence", "```json\n{\"category\": \"Order Status\"}\n```", "Order Status", false},
		{"bare fence", "```\n{\"category\": \"Feedback & Suggestion\"}\n```", "Feedback & Suggestion", false},
		{"surrounding whitespace", "  \n{\"category\": \"Account Issue\"}\n  ", "Account Issue", false},
		{"not json", "sorry, I cannot help with that", "", true},
		{"truncated", `{"category": "Pay`, "", true},
		{"empty", "", "", true},
		{"fence only", "```json\n```", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := DecodeJSON(tt.raw, &p)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("expected ErrMalformed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Category != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, p.Category)
			}
		})
	}
}

func TestDecodeJSONIntoSlice(t *testing.T) {
	var items []struct {
		ID string `json:"id"`
	}
	raw := "```json\n[{\"id\": \"a\"}, {\"id\": \"b\"}]\n```"
	if err := DecodeJSON(raw, &items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("unexpected items: %+v", items)
	}
}
