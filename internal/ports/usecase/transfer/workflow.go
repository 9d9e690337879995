package port_transfer

import (
	"context"

	"github.com/shopspring/decimal"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
)

// Snapshot is a point-in-time copy of the workflow for rendering. It shares
// no mutable state with the controller.
type Snapshot struct {
	State domain_transfer.State
	// LastOutcome is Committed or Failed after the most recent attempt,
	// empty before any commit was tried.
	LastOutcome domain_transfer.State
	Draft       domain_transfer.Draft
	Validation  domain_transfer.ValidationState
	Sender      *domain_transfer.AccountRef
	Recipient   *domain_transfer.AccountRef
	Review      *Review
	LastError   string
}

// Review is the confirmation-surface view of a frozen intent.
type Review struct {
	IntentID    string
	FromAccount string
	FromHolder  string
	ToAccount   string
	ToHolder    string
	Amount      decimal.Decimal
	Description string
	Internal    bool
}

// TransferWorkflow orchestrates recipient validation, pre-commit checks,
// user confirmation and commit of one funds transfer, with no duplicate
// submissions. Implementations drain output events through PullEvents.
type TransferWorkflow interface {
	SelectFromAccount(ctx context.Context, accountNumber string) error
	EditToAccount(accountNumber string)
	EditAmount(amount decimal.Decimal)
	EditPIN(pin string)
	EditDescription(description string)

	Submit(ctx context.Context) error
	Review() (*Review, error)
	Confirm(ctx context.Context) error
	Cancel() error

	Snapshot() Snapshot
	PullEvents() []domain_transfer.Event
	Close()
}
