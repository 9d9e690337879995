package domain_transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is an output of the workflow state machine. The transition logic
// performs no I/O itself: the surrounding shell drains events and dispatches
// notifications and completion callbacks.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// RecipientResolved is raised when a debounced lookup lands for the current
// destination input. Stale lookups never produce this event.
type RecipientResolved struct {
	At            time.Time
	AccountNumber string
	Recipient     AccountRef
}

func (e RecipientResolved) EventName() string { return "transfer.recipient.resolved" }

func (e RecipientResolved) OccurredAt() time.Time { return e.At }

// IntentCreated is raised when a draft passes every advisory check and is
// frozen for confirmation.
type IntentCreated struct {
	At          time.Time
	IntentID    uuid.UUID
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	Internal    bool
}

func (e IntentCreated) EventName() string { return "transfer.intent.created" }

func (e IntentCreated) OccurredAt() time.Time { return e.At }

type TransferCommitted struct {
	At            time.Time
	IntentID      uuid.UUID
	FromAccount   string
	ToAccount     string
	Amount        decimal.Decimal
	NewBalance    decimal.Decimal
	TransactionID string
}

func (e TransferCommitted) EventName() string { return "transfer.committed" }

func (e TransferCommitted) OccurredAt() time.Time { return e.At }

type TransferFailed struct {
	At       time.Time
	IntentID uuid.UUID
	Code     FailureCode
	Reason   string
}

func (e TransferFailed) EventName() string { return "transfer.failed" }

func (e TransferFailed) OccurredAt() time.Time { return e.At }

// NotificationRequested asks the shell to surface a toast through the
// notification sink.
type NotificationRequested struct {
	At      time.Time
	Kind    NoticeKind
	Message string
}

func (e NotificationRequested) EventName() string { return "transfer.notification.requested" }

func (e NotificationRequested) OccurredAt() time.Time { return e.At }

// CompletionRequested asks the shell to run the caller-supplied completion
// callback. Raised exactly once per successful commit.
type CompletionRequested struct {
	At time.Time
}

func (e CompletionRequested) EventName() string { return "transfer.completion.requested" }

func (e CompletionRequested) OccurredAt() time.Time { return e.At }
