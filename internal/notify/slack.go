// Package notify delivers proactive alerts to external channels.
package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intel/internal/events"
)

// SlackNotifier posts raised alerts to a Slack channel. Delivery failures
// are logged and swallowed; alerting the dashboard never depends on Slack.
type SlackNotifier struct {
	client  *slack.Client
	channel string
	logger  *zap.Logger
}

// NewSlackNotifier constructs the notifier.
func NewSlackNotifier(token, channel string, logger *zap.Logger) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(token),
		channel: channel,
		logger:  logger,
	}
}

// Register subscribes the notifier to alert events.
func (n *SlackNotifier) Register(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventAlertRaised, n.handleAlert)
}

func (n *SlackNotifier) handleAlert(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AlertRaisedPayload)
	if !ok {
		return nil
	}
	alert := payload.Alert
	text := fmt.Sprintf(":rotating_light: *[%s] %s*\n%s", alert.Severity, alert.Title, alert.Description)
	_, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionText(text, false))
	if err != nil {
		n.logger.Warn("slack alert delivery failed",
			zap.String("alert_id", alert.ID),
			zap.Error(err))
	}
	return nil
}
