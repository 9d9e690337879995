package domain_transfer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IntentStatus string

const (
	IntentPending   IntentStatus = "PENDING"
	IntentCommitted IntentStatus = "COMMITTED"
	IntentFailed    IntentStatus = "FAILED"
	IntentDiscarded IntentStatus = "DISCARDED"
)

func (s IntentStatus) IsFinal() bool {
	return s == IntentCommitted || s == IntentFailed || s == IntentDiscarded
}

// Intent is a frozen, validated copy of a Draft plus the resolved holder
// names on both sides. It is created at confirmation time, never mutated,
// and is either committed, failed or discarded.
type Intent struct {
	id uuid.UUID

	fromAccount string
	toAccount   string
	amount      decimal.Decimal
	pin         string
	description string

	fromHolder string
	toHolder   string
	internal   bool

	status        IntentStatus
	failureCode   FailureCode
	failureReason string
	transactionID string
	newBalance    decimal.Decimal

	createdAt time.Time
	updatedAt time.Time

	pendingEvents []Event
}

type IntentParams struct {
	IntentID      uuid.UUID
	Draft         Draft
	Sender        AccountRef
	Recipient     AccountRef
	OwnedAccounts []string
	Now           time.Time
}

// NewIntent runs the advisory checks in their documented order and freezes
// the draft. The execution service re-validates everything authoritatively;
// these checks only stop obviously-doomed round trips.
func NewIntent(p IntentParams) (*Intent, error) {
	if p.IntentID == uuid.Nil {
		return nil, ErrInvalidIntentID
	}

	if !p.Draft.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	to := strings.TrimSpace(p.Draft.ToAccount)
	if to == "" || p.Recipient.AccountNumber != to {
		return nil, ErrRecipientUnresolved
	}

	if !p.Recipient.Active {
		return nil, ErrRecipientInactive
	}

	from := strings.TrimSpace(p.Draft.FromAccount)
	if from == "" || p.Sender.AccountNumber != from {
		return nil, ErrSenderUnresolved
	}

	if p.Draft.Amount.GreaterThan(p.Sender.Balance) {
		return nil, ErrInsufficientFunds
	}

	if to == from {
		return nil, ErrSelfTransfer
	}

	if !validPIN(p.Draft.PIN) {
		return nil, ErrInvalidPIN
	}

	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	internal := false
	for _, owned := range p.OwnedAccounts {
		if owned == to {
			internal = true
			break
		}
	}

	it := &Intent{
		id:          p.IntentID,
		fromAccount: from,
		toAccount:   to,
		amount:      p.Draft.Amount,
		pin:         p.Draft.PIN,
		description: strings.TrimSpace(p.Draft.Description),
		fromHolder:  p.Sender.HolderName,
		toHolder:    p.Recipient.HolderName,
		internal:    internal,
		status:      IntentPending,
		createdAt:   p.Now,
		updatedAt:   p.Now,
	}

	it.raise(IntentCreated{
		At:          p.Now,
		IntentID:    it.id,
		FromAccount: it.fromAccount,
		ToAccount:   it.toAccount,
		Amount:      it.amount,
		Internal:    it.internal,
	})

	return it, nil
}

func (it *Intent) Complete(transactionID string, newBalance decimal.Decimal, now time.Time) error {
	if it.status.IsFinal() {
		return ErrAlreadyFinalized
	}

	if it.status != IntentPending {
		return ErrInvalidStateTransition
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	it.status = IntentCommitted
	it.transactionID = transactionID
	it.newBalance = newBalance
	it.updatedAt = now

	it.raise(TransferCommitted{
		At:            now,
		IntentID:      it.id,
		FromAccount:   it.fromAccount,
		ToAccount:     it.toAccount,
		Amount:        it.amount,
		NewBalance:    newBalance,
		TransactionID: transactionID,
	})

	return nil
}

func (it *Intent) Fail(code FailureCode, reason string, now time.Time) error {
	if it.status.IsFinal() {
		return ErrAlreadyFinalized
	}

	if it.status != IntentPending {
		return ErrInvalidStateTransition
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrMissingFailureReason
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	it.status = IntentFailed
	it.failureCode = code
	it.failureReason = reason
	it.updatedAt = now

	it.raise(TransferFailed{
		At:       now,
		IntentID: it.id,
		Code:     code,
		Reason:   reason,
	})

	return nil
}

// Discard abandons a pending intent without raising events. Used when the
// user cancels from the confirmation surface.
func (it *Intent) Discard(now time.Time) error {
	if it.status.IsFinal() {
		return ErrAlreadyFinalized
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	it.status = IntentDiscarded
	it.updatedAt = now

	return nil
}

func (it *Intent) PullEvents() []Event {
	if len(it.pendingEvents) == 0 {
		return nil
	}

	ev := make([]Event, len(it.pendingEvents))
	copy(ev, it.pendingEvents)

	it.pendingEvents = it.pendingEvents[:0]

	return ev
}

func (it *Intent) raise(event Event) {
	it.pendingEvents = append(it.pendingEvents, event)
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (it *Intent) ID() uuid.UUID { return it.id }

func (it *Intent) FromAccount() string { return it.fromAccount }

func (it *Intent) ToAccount() string { return it.toAccount }

func (it *Intent) Amount() decimal.Decimal { return it.amount }

func (it *Intent) PIN() string { return it.pin }

func (it *Intent) Description() string { return it.description }

func (it *Intent) FromHolder() string { return it.fromHolder }

func (it *Intent) ToHolder() string { return it.toHolder }

func (it *Intent) Internal() bool { return it.internal }

func (it *Intent) Status() IntentStatus { return it.status }

func (it *Intent) FailureCode() FailureCode { return it.failureCode }

func (it *Intent) FailureReason() string { return it.failureReason }

func (it *Intent) TransactionID() string { return it.transactionID }

func (it *Intent) NewBalance() decimal.Decimal { return it.newBalance }

func (it *Intent) CreatedAt() time.Time { return it.createdAt }

func (it *Intent) UpdatedAt() time.Time { return it.updatedAt }
