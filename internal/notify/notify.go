// Package notify delivers order receipts to customers.
package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes receipt notifications to the structured log instead
// of a real mail transport. Deployments without an SMTP relay run with
// this; the log line carries everything the mail would.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a notifier that logs through the given logger.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// SendOrderReceipt records that a receipt email went out.
func (n *LogNotifier) SendOrderReceipt(ctx context.Context, email string, total float64) error {
	n.log.InfoContext(ctx, "order receipt email sent", "to", email, "total", total)
	return nil
}
