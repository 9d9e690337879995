package domain_transfer

import "github.com/shopspring/decimal"

type AccountType string

const (
	AccountSavings AccountType = "SAVINGS"
	AccountCurrent AccountType = "CURRENT"
	AccountCredit  AccountType = "CREDIT"
)

// AccountRef is an immutable snapshot of what the account directory reported
// for one account number. It is never patched in place: any change to the
// number it describes triggers a fresh fetch.
type AccountRef struct {
	AccountNumber string
	AccountType   AccountType
	HolderName    string
	Balance       decimal.Decimal
	Active        bool
}

// Draft is the in-progress, user-editable transfer form state. It is built
// incrementally from input events and is never transmitted anywhere until the
// user explicitly confirms the intent snapshotted from it.
type Draft struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	PIN         string
	Description string
}

func (d Draft) Equal(o Draft) bool {
	return d.FromAccount == o.FromAccount &&
		d.ToAccount == o.ToAccount &&
		d.Amount.Equal(o.Amount) &&
		d.PIN == o.PIN &&
		d.Description == o.Description
}

// Reset clears everything the user typed. The selected source account
// survives so another transfer can start immediately.
func (d *Draft) Reset() {
	d.ToAccount = ""
	d.Amount = decimal.Decimal{}
	d.PIN = ""
	d.Description = ""
}

// ValidationState is the per-field advisory outcome, recomputed on every
// relevant input change. It pre-populates the confirmation view and avoids
// obviously-doomed round trips; the execution service remains the sole
// authoritative gate.
type ValidationState struct {
	Lookup          LookupStatus
	AmountValid     bool
	SufficientFunds bool
}

// NoticeKind classifies a user-facing notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "SUCCESS"
	NoticeError   NoticeKind = "ERROR"
	NoticeInfo    NoticeKind = "INFO"
)
