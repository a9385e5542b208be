package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
)

// Notifier delivers customer-facing messages about order progress.
// Implementations are best-effort: a failed notification is logged and
// never rolls back the state change that triggered it.
type Notifier interface {
	// NotifyOrderStatusChanged tells the owner their order moved to a new
	// status. Detail carries human wording like a rejection reason or ETA.
	NotifyOrderStatusChanged(ctx context.Context, owner kernel.OwnerRef, orderNumber, status, detail string) error
}
