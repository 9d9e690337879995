package impl_transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
	port_directory "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/directory"
	port_execution "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/execution"
	port_platform "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/platform"
	port_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/ports/usecase/transfer"
)

// Config tunes the workflow. Zero values fall back to the defaults below.
type Config struct {
	DebounceWindow  time.Duration
	MinLookupLength int
	LookupTimeout   time.Duration
	CommitTimeout   time.Duration
}

const (
	defaultDebounceWindow  = 500 * time.Millisecond
	defaultMinLookupLength = 10
	defaultLookupTimeout   = 5 * time.Second
	defaultCommitTimeout   = 15 * time.Second
)

func (c Config) withDefaults() Config {
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = defaultDebounceWindow
	}
	if c.MinLookupLength <= 0 {
		c.MinLookupLength = defaultMinLookupLength
	}
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = defaultLookupTimeout
	}
	if c.CommitTimeout <= 0 {
		c.CommitTimeout = defaultCommitTimeout
	}
	return c
}

// Deps are the collaborators one controller orchestrates.
type Deps struct {
	Directory port_directory.AccountDirectory
	Executor  port_execution.TransferExecutor
	Clock     port_platform.Clock
	IDs       port_platform.IDGenerator
	Scheduler port_platform.Scheduler
	Logger    *zap.Logger
}

// Controller implements port_transfer.TransferWorkflow: a single-user
// funds-transfer state machine with debounced recipient lookup,
// confirm-then-commit two-phase flow and exactly one outstanding commit.
//
// All mutable state lives behind mu. Network calls happen outside the lock;
// their results are re-checked against the current generation before being
// applied, so a lookup that lands after the input changed is discarded.
type Controller struct {
	mu sync.Mutex

	dir   port_directory.AccountDirectory
	exec  port_execution.TransferExecutor
	clock port_platform.Clock
	ids   port_platform.IDGenerator
	sched port_platform.Scheduler
	log   *zap.Logger
	cfg   Config

	owned []string

	state       domain_transfer.State
	lastOutcome domain_transfer.State
	draft       domain_transfer.Draft
	validation  domain_transfer.ValidationState
	sender      *domain_transfer.AccountRef
	recipient   *domain_transfer.AccountRef
	intent      *domain_transfer.Intent
	lastError   string

	lookupSeq uint64
	timer     port_platform.Timer
	closed    bool

	events []domain_transfer.Event
}

var _ port_transfer.TransferWorkflow = (*Controller)(nil)

// NewController builds a controller for one signed-in customer. owned is the
// customer's own account numbers, used only to label a transfer as internal.
func NewController(deps Deps, owned []string, cfg Config) *Controller {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Controller{
		dir:        deps.Directory,
		exec:       deps.Executor,
		clock:      deps.Clock,
		ids:        deps.IDs,
		sched:      deps.Scheduler,
		log:        log,
		cfg:        cfg.withDefaults(),
		owned:      append([]string(nil), owned...),
		state:      domain_transfer.StateEditing,
		validation: domain_transfer.ValidationState{Lookup: domain_transfer.LookupIdle},
	}
}

// SelectFromAccount records the source account and re-fetches its directory
// snapshot for the current balance and status. The fetch is independent of
// any in-flight recipient lookup.
func (c *Controller) SelectFromAccount(ctx context.Context, accountNumber string) error {
	accountNumber = strings.TrimSpace(accountNumber)

	c.mu.Lock()
	if c.closed || !c.state.CanEdit() {
		c.mu.Unlock()
		return domain_transfer.ErrInvalidStateTransition
	}
	c.draft.FromAccount = accountNumber
	c.sender = nil
	c.mu.Unlock()

	ref, err := c.dir.Lookup(ctx, accountNumber)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.FromAccount != accountNumber {
		// source changed again while we were fetching
		return nil
	}

	if err != nil {
		c.recomputeAmountChecksLocked()
		return fmt.Errorf("select source account %q: %w", accountNumber, err)
	}

	c.sender = &ref
	c.recomputeAmountChecksLocked()
	return nil
}

// EditToAccount records a destination keystroke. Each call cancels the prior
// debounce timer; a lookup is only scheduled once the input reaches the
// minimum plausible length, and shorter input resets the lookup sub-state to
// Idle with no network call.
func (c *Controller) EditToAccount(accountNumber string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.state.CanEdit() {
		return
	}

	c.draft.ToAccount = accountNumber
	c.recipient = nil
	c.lookupSeq++
	c.stopTimerLocked()

	trimmed := strings.TrimSpace(accountNumber)
	if len(trimmed) < c.cfg.MinLookupLength {
		c.validation.Lookup = domain_transfer.LookupIdle
		c.recomputeAmountChecksLocked()
		return
	}

	c.validation.Lookup = domain_transfer.LookupValidating
	c.recomputeAmountChecksLocked()

	seq := c.lookupSeq
	c.timer = c.sched.Schedule(c.cfg.DebounceWindow, func() {
		c.lookupRecipient(seq, trimmed)
	})
}

func (c *Controller) EditAmount(amount decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.state.CanEdit() {
		return
	}

	c.draft.Amount = amount
	c.recomputeAmountChecksLocked()
}

func (c *Controller) EditPIN(pin string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.state.CanEdit() {
		return
	}

	c.draft.PIN = pin
}

func (c *Controller) EditDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.state.CanEdit() {
		return
	}

	c.draft.Description = description
}

// lookupRecipient runs on the scheduler goroutine once the debounce window
// elapses. Only the result matching the current input generation is applied.
func (c *Controller) lookupRecipient(seq uint64, accountNumber string) {
	c.mu.Lock()
	if c.closed || seq != c.lookupSeq {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.LookupTimeout)
	defer cancel()

	ref, err := c.dir.Lookup(ctx, accountNumber)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.lookupSeq {
		return
	}

	if err != nil {
		if !errors.Is(err, port_directory.ErrNotFound) {
			// transport failure fails closed: treated as not found
			c.log.Warn("recipient lookup failed",
				zap.String("account", accountNumber),
				zap.Error(err))
		}
		c.recipient = nil
		c.validation.Lookup = domain_transfer.LookupNotFound
		return
	}

	c.recipient = &ref
	c.validation.Lookup = domain_transfer.LookupFound
	c.recomputeAmountChecksLocked()
	c.raiseLocked(domain_transfer.RecipientResolved{
		At:            c.clock.Now(),
		AccountNumber: accountNumber,
		Recipient:     ref,
	})
}

// Submit runs the advisory checks in order, short-circuiting on the first
// failure, refreshes the sender balance, and freezes the draft into an
// intent awaiting confirmation.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()

	if c.closed || c.state != domain_transfer.StateEditing {
		c.mu.Unlock()
		return domain_transfer.ErrInvalidStateTransition
	}

	if !c.draft.Amount.IsPositive() {
		defer c.mu.Unlock()
		return c.rejectSubmitLocked(domain_transfer.ErrInvalidAmount)
	}

	if c.validation.Lookup != domain_transfer.LookupFound || c.recipient == nil {
		defer c.mu.Unlock()
		return c.rejectSubmitLocked(domain_transfer.ErrRecipientUnresolved)
	}

	if !c.recipient.Active {
		defer c.mu.Unlock()
		return c.rejectSubmitLocked(domain_transfer.ErrRecipientInactive)
	}

	from := c.draft.FromAccount
	c.mu.Unlock()

	// the cached sender balance can be stale; refresh it before the funds
	// check. On refresh failure the last-known snapshot stands, since the
	// check is advisory and the service re-validates on commit.
	ref, err := c.dir.Lookup(ctx, from)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state != domain_transfer.StateEditing {
		return domain_transfer.ErrInvalidStateTransition
	}

	if err == nil && from == c.draft.FromAccount {
		c.sender = &ref
	} else if err != nil {
		c.log.Warn("sender refresh failed, using last-known balance",
			zap.String("account", from),
			zap.Error(err))
	}
	c.recomputeAmountChecksLocked()

	// the destination may have been edited while the lock was released
	if c.recipient == nil || c.validation.Lookup != domain_transfer.LookupFound ||
		c.recipient.AccountNumber != strings.TrimSpace(c.draft.ToAccount) {
		return c.rejectSubmitLocked(domain_transfer.ErrRecipientUnresolved)
	}

	if c.sender == nil {
		return c.rejectSubmitLocked(domain_transfer.ErrSenderUnresolved)
	}

	if c.draft.Amount.GreaterThan(c.sender.Balance) {
		return c.rejectSubmitLocked(domain_transfer.ErrInsufficientFunds)
	}

	intent, err := domain_transfer.NewIntent(domain_transfer.IntentParams{
		IntentID:      c.ids.NewUUID(),
		Draft:         c.draft,
		Sender:        *c.sender,
		Recipient:     *c.recipient,
		OwnedAccounts: c.owned,
		Now:           c.clock.Now(),
	})
	if err != nil {
		return c.rejectSubmitLocked(err)
	}

	c.intent = intent
	c.events = append(c.events, intent.PullEvents()...)
	c.lastError = ""
	c.state = domain_transfer.StateReadyForReview
	return nil
}

// Review marks the confirmation surface displayed and returns the frozen
// intent view. Idempotent while awaiting confirmation.
func (c *Controller) Review() (*port_transfer.Review, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.state.AwaitingConfirmation() || c.intent == nil {
		return nil, domain_transfer.ErrInvalidStateTransition
	}

	c.state = domain_transfer.StateConfirming
	return reviewOf(c.intent), nil
}

// Cancel returns from the confirmation surface to Editing with the draft
// intact.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.state.AwaitingConfirmation() || c.intent == nil {
		return domain_transfer.ErrInvalidStateTransition
	}

	_ = c.intent.Discard(c.clock.Now())
	c.intent = nil
	c.state = domain_transfer.StateEditing
	return nil
}

// Confirm commits the frozen intent. The Committing state admits exactly one
// outstanding call: a second Confirm, programmatic or not, is refused until
// the first reaches a terminal outcome.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()

	if c.closed || c.state != domain_transfer.StateConfirming || c.intent == nil {
		c.mu.Unlock()
		return domain_transfer.ErrInvalidStateTransition
	}

	intent := c.intent
	c.state = domain_transfer.StateCommitting
	order := port_execution.Order{
		FromAccount: intent.FromAccount(),
		ToAccount:   intent.ToAccount(),
		Amount:      intent.Amount(),
		PIN:         intent.PIN(),
		Description: intent.Description(),
		Reference:   intent.ID().String(),
	}
	timeout := c.cfg.CommitTimeout
	c.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	receipt, err := c.exec.Commit(cctx, order)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()

	if err != nil {
		code, msg := domain_transfer.Classify(err)
		_ = intent.Fail(code, msg, now)
		c.events = append(c.events, intent.PullEvents()...)
		c.raiseLocked(domain_transfer.NotificationRequested{
			At:      now,
			Kind:    domain_transfer.NoticeError,
			Message: msg,
		})
		// draft preserved so the user can correct and resubmit
		c.intent = nil
		c.lastError = msg
		c.lastOutcome = domain_transfer.StateFailed
		c.state = domain_transfer.StateEditing
		return err
	}

	_ = intent.Complete(receipt.TransactionID, receipt.FromAccountBalance, now)
	c.events = append(c.events, intent.PullEvents()...)
	c.raiseLocked(domain_transfer.NotificationRequested{
		At:   now,
		Kind: domain_transfer.NoticeSuccess,
		Message: fmt.Sprintf("Transfer successful. New balance: R%s",
			receipt.FromAccountBalance.StringFixed(2)),
	})
	c.raiseLocked(domain_transfer.CompletionRequested{At: now})

	c.draft.Reset()
	c.recipient = nil
	c.validation = domain_transfer.ValidationState{Lookup: domain_transfer.LookupIdle}
	if c.sender != nil {
		refreshed := *c.sender
		refreshed.Balance = receipt.FromAccountBalance
		c.sender = &refreshed
	}
	c.intent = nil
	c.lastError = ""
	c.lastOutcome = domain_transfer.StateCommitted
	c.state = domain_transfer.StateEditing
	return nil
}

// Snapshot returns a copy of the workflow for rendering, sharing no mutable
// state with the controller.
func (c *Controller) Snapshot() port_transfer.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := port_transfer.Snapshot{
		State:       c.state,
		LastOutcome: c.lastOutcome,
		Draft:       c.draft,
		Validation:  c.validation,
		LastError:   c.lastError,
	}
	if c.sender != nil {
		sender := *c.sender
		snap.Sender = &sender
	}
	if c.recipient != nil {
		recipient := *c.recipient
		snap.Recipient = &recipient
	}
	if c.intent != nil {
		snap.Review = reviewOf(c.intent)
	}
	return snap
}

func (c *Controller) PullEvents() []domain_transfer.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.events) == 0 {
		return nil
	}

	ev := make([]domain_transfer.Event, len(c.events))
	copy(ev, c.events)

	c.events = c.events[:0]

	return ev
}

// Close tears the workflow down, cancelling any pending debounce timer so it
// cannot fire against a disposed controller.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.lookupSeq++
	c.stopTimerLocked()
}

func (c *Controller) rejectSubmitLocked(err error) error {
	code, msg := domain_transfer.Classify(err)
	c.lastError = msg
	c.raiseLocked(domain_transfer.NotificationRequested{
		At:      c.clock.Now(),
		Kind:    domain_transfer.NoticeError,
		Message: msg,
	})
	c.log.Debug("submit rejected",
		zap.String("code", string(code)),
		zap.String("reason", msg))
	return err
}

func (c *Controller) recomputeAmountChecksLocked() {
	c.validation.AmountValid = c.draft.Amount.IsPositive()
	c.validation.SufficientFunds = c.validation.AmountValid &&
		c.sender != nil &&
		!c.draft.Amount.GreaterThan(c.sender.Balance)
}

func (c *Controller) raiseLocked(event domain_transfer.Event) {
	c.events = append(c.events, event)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func reviewOf(intent *domain_transfer.Intent) *port_transfer.Review {
	return &port_transfer.Review{
		IntentID:    intent.ID().String(),
		FromAccount: intent.FromAccount(),
		FromHolder:  intent.FromHolder(),
		ToAccount:   intent.ToAccount(),
		ToHolder:    intent.ToHolder(),
		Amount:      intent.Amount(),
		Description: intent.Description(),
		Internal:    intent.Internal(),
	}
}
