package impl_transfer

import (
	"context"

	"go.uber.org/zap"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
	port_notify "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/notify"
)

// Dispatcher performs the I/O the state machine only requests: toasts go to
// the notification sink, completion callbacks fire once per commit, and the
// remaining events are logged.
type Dispatcher struct {
	notifier   port_notify.Notifier
	onComplete func()
	log        *zap.Logger
}

// NewDispatcher builds a dispatcher. onComplete is invoked once per
// successful commit; callers use it to refresh dependent views. Either
// argument may be nil.
func NewDispatcher(notifier port_notify.Notifier, onComplete func(), log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		notifier:   notifier,
		onComplete: onComplete,
		log:        log,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, events []domain_transfer.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case domain_transfer.NotificationRequested:
			if d.notifier != nil {
				d.notifier.Notify(ctx, port_notify.Notice{Kind: e.Kind, Message: e.Message})
			}
		case domain_transfer.CompletionRequested:
			if d.onComplete != nil {
				d.onComplete()
			}
		case domain_transfer.TransferCommitted:
			d.log.Info("transfer committed",
				zap.String("intent_id", e.IntentID.String()),
				zap.String("transaction_id", e.TransactionID),
				zap.String("from", e.FromAccount),
				zap.String("to", e.ToAccount),
				zap.String("amount", e.Amount.StringFixed(2)))
		case domain_transfer.TransferFailed:
			d.log.Warn("transfer failed",
				zap.String("intent_id", e.IntentID.String()),
				zap.String("code", string(e.Code)),
				zap.String("reason", e.Reason))
		case domain_transfer.IntentCreated:
			d.log.Debug("intent created",
				zap.String("intent_id", e.IntentID.String()),
				zap.Bool("internal", e.Internal))
		case domain_transfer.RecipientResolved:
			d.log.Debug("recipient resolved",
				zap.String("account", e.AccountNumber),
				zap.String("holder", e.Recipient.HolderName))
		default:
			d.log.Debug("unhandled workflow event", zap.String("event", ev.EventName()))
		}
	}
}
