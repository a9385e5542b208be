// Package notify delivers customer-facing order notifications. The current
// implementation writes structured log lines; swapping in an SMS or email
// gateway is a matter of implementing the same port.
package notify

import (
	"context"
	"log/slog"

	"pharmacy/internal/core/domain/model/kernel"
)

// LogNotifier implements ports.Notifier over structured logging.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyOrderStatusChanged records the notification that would be sent to
// the owner. Guests are addressed by session token, customers by ID.
func (n *LogNotifier) NotifyOrderStatusChanged(
	_ context.Context, owner kernel.OwnerRef, orderNumber, status, detail string,
) error {
	n.logger.Info("order notification",
		slog.String("owner", owner.String()),
		slog.String("order_number", orderNumber),
		slog.String("status", status),
		slog.String("detail", detail),
	)
	return nil
}
