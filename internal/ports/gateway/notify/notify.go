package port_notify

import (
	"context"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
)

type Notice struct {
	Kind    domain_transfer.NoticeKind
	Message string
}

// Notifier is the fire-and-forget surface for success/error toasts. No
// return value is consumed by the workflow.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}
