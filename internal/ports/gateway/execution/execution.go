package port_execution

import (
	"context"

	"github.com/shopspring/decimal"
)

// Order is the commit payload for one confirmed intent.
type Order struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	PIN         string
	Description string
	Reference   string
}

// Receipt is the authoritative outcome of a committed transfer.
type Receipt struct {
	TransactionID      string
	FromAccountBalance decimal.Decimal
	RecipientName      string
	InternalTransfer   bool
}

// TransferExecutor atomically moves funds between two accounts. It is the
// sole source of truth: an error return means no transfer happened, a
// *domain_transfer.Rejection means the service explicitly refused, and a
// Receipt is only produced on explicit success.
type TransferExecutor interface {
	Commit(ctx context.Context, order Order) (Receipt, error)
}
