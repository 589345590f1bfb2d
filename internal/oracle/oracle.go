package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Client is the port to the external prediction service. All natural
// language understanding in the system flows through it; implementations
// perform one network round trip per call and never retry.
type Client interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// Prompt carries the instructions for one oracle invocation. The system
// text names the allowed enumeration values and the required JSON shape;
// steering the model toward schema-conformant output happens here.
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

// Sentinel failures. Callers branch on these with errors.Is; neither is
// ever surfaced to the presentation layer as-is.
var (
	// ErrUnavailable covers network failure, timeout, and upstream errors.
	ErrUnavailable = errors.New("oracle unavailable")
	// ErrMalformed covers payloads that cannot be parsed into the expected shape.
	ErrMalformed = errors.New("oracle response malformed")
)

const defaultMaxTokens = 2048

// DecodeJSON parses an oracle response into v. Models sometimes wrap JSON
// in markdown fences despite instructions, so fences are stripped first.
func DecodeJSON(raw string, v any) error {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty response", ErrMalformed)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
