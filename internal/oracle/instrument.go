package oracle

import (
	"context"

	"github.com/spec-kit/ticket-intel/internal/observability"
)

type instrumentedClient struct {
	inner   Client
	metrics *observability.Metrics
}

// Instrument wraps a client so every invocation is counted.
func Instrument(c Client, m *observability.Metrics) Client {
	return &instrumentedClient{inner: c, metrics: m}
}

func (c *instrumentedClient) Complete(ctx context.Context, p Prompt) (string, error) {
	raw, err := c.inner.Complete(ctx, p)
	c.metrics.RecordOracleCall("complete", err == nil)
	return raw, err
}
