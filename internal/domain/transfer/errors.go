package domain_transfer

import "errors"

var (
	ErrInvalidIntentID     = errors.New("transfer: invalid intent_id")
	ErrInvalidAmount       = errors.New("transfer: amount must be greater than zero")
	ErrRecipientUnresolved = errors.New("transfer: recipient account has not been verified")
	ErrRecipientInactive   = errors.New("transfer: recipient account is not active")
	ErrSenderUnresolved    = errors.New("transfer: source account details are unavailable")
	ErrInsufficientFunds   = errors.New("transfer: amount exceeds available balance")
	ErrSelfTransfer        = errors.New("transfer: source and destination accounts are the same")
	ErrInvalidPIN          = errors.New("transfer: pin must be exactly 4 digits")

	ErrInvalidStateTransition = errors.New("transfer: invalid state transition")
	ErrAlreadyFinalized       = errors.New("transfer: intent already finalized")
	ErrMissingFailureReason   = errors.New("transfer: failure_reason is required to fail intent")
)

// FailureCode is the stable taxonomy a failed attempt is reported under,
// both inline and through the notification sink.
type FailureCode string

const (
	CodeInvalidAmount       FailureCode = "INVALID_AMOUNT"
	CodeRecipientUnresolved FailureCode = "RECIPIENT_UNRESOLVED"
	CodeRecipientInactive   FailureCode = "RECIPIENT_INACTIVE"
	CodeInsufficientFunds   FailureCode = "INSUFFICIENT_FUNDS"
	CodeSelfTransfer        FailureCode = "SELF_TRANSFER"
	CodeInvalidPIN          FailureCode = "INVALID_PIN"
	CodeCommitRejected      FailureCode = "COMMIT_REJECTED"
	CodeTransportFailure    FailureCode = "TRANSPORT_FAILURE"
)

// Rejection is a commit the execution service explicitly refused, carrying
// the server-reported reason (wrong PIN, stale balance, recipient closed).
type Rejection struct {
	Code    FailureCode
	Message string
}

func (r *Rejection) Error() string {
	return "transfer rejected: " + r.Message
}

// Classify maps any error surfaced by the workflow to its failure code and a
// user-presentable message. Unknown errors are treated as transport failures:
// a commit is never assumed successful unless the service said so.
func Classify(err error) (FailureCode, string) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Code, rej.Message
	}

	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount, "Enter an amount greater than zero"
	case errors.Is(err, ErrRecipientUnresolved), errors.Is(err, ErrSenderUnresolved):
		return CodeRecipientUnresolved, "The destination account could not be verified"
	case errors.Is(err, ErrRecipientInactive):
		return CodeRecipientInactive, "The destination account is not active"
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds, "Insufficient funds for this transfer"
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer, "You cannot transfer to the same account"
	case errors.Is(err, ErrInvalidPIN):
		return CodeInvalidPIN, "Enter your 4-digit PIN"
	default:
		return CodeTransportFailure, "The banking service is unavailable, please try again"
	}
}
