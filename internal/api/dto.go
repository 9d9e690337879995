package api

import (
	"github.com/shopspring/decimal"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
	port_notify "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/notify"
	port_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/ports/usecase/transfer"
	"github.com/Rea1521/mahlangu-capital-bank/internal/session"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
}

type loginResponse struct {
	Token    string           `json:"token"`
	Customer session.Customer `json:"customer"`
}

type movementRequest struct {
	Amount      string `json:"amount" validate:"required"`
	PIN         string `json:"pin" validate:"omitempty,len=4,numeric"`
	Description string `json:"description" validate:"omitempty,max=256"`
}

type balanceResponse struct {
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// draftRequest is a partial update: only the fields present are applied.
type draftRequest struct {
	FromAccount *string `json:"fromAccount" validate:"omitempty,min=1,max=32"`
	ToAccount   *string `json:"toAccount" validate:"omitempty,max=32"`
	Amount      *string `json:"amount"`
	PIN         *string `json:"pin" validate:"omitempty,len=4,numeric"`
	Description *string `json:"description" validate:"omitempty,max=256"`
}

type accountView struct {
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	HolderName    string          `json:"holderName"`
	Balance       decimal.Decimal `json:"balance"`
	Active        bool            `json:"active"`
}

type draftView struct {
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
	PINEntered  bool            `json:"pinEntered"`
	Description string          `json:"description"`
}

type validationView struct {
	Lookup          string `json:"lookup"`
	AmountValid     bool   `json:"amountValid"`
	SufficientFunds bool   `json:"sufficientFunds"`
}

type reviewView struct {
	IntentID    string          `json:"intentId"`
	FromAccount string          `json:"fromAccount"`
	FromHolder  string          `json:"fromHolder"`
	ToAccount   string          `json:"toAccount"`
	ToHolder    string          `json:"toHolder"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Internal    bool            `json:"internalTransfer"`
}

type workflowView struct {
	State              string         `json:"state"`
	LastOutcome        string         `json:"lastOutcome,omitempty"`
	Draft              draftView      `json:"draft"`
	Validation         validationView `json:"validation"`
	Sender             *accountView   `json:"sender,omitempty"`
	Recipient          *accountView   `json:"recipient,omitempty"`
	Review             *reviewView    `json:"review,omitempty"`
	LastError          string         `json:"lastError,omitempty"`
	CompletedTransfers int64          `json:"completedTransfers"`
}

type noticeView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func accountViewOf(ref domain_transfer.AccountRef) *accountView {
	return &accountView{
		AccountNumber: ref.AccountNumber,
		AccountType:   string(ref.AccountType),
		HolderName:    ref.HolderName,
		Balance:       ref.Balance,
		Active:        ref.Active,
	}
}

func workflowViewOf(snap port_transfer.Snapshot, completed int64) workflowView {
	view := workflowView{
		State:       string(snap.State),
		LastOutcome: string(snap.LastOutcome),
		Draft: draftView{
			FromAccount: snap.Draft.FromAccount,
			ToAccount:   snap.Draft.ToAccount,
			Amount:      snap.Draft.Amount,
			PINEntered:  snap.Draft.PIN != "",
			Description: snap.Draft.Description,
		},
		Validation: validationView{
			Lookup:          string(snap.Validation.Lookup),
			AmountValid:     snap.Validation.AmountValid,
			SufficientFunds: snap.Validation.SufficientFunds,
		},
		LastError:          snap.LastError,
		CompletedTransfers: completed,
	}

	if snap.Sender != nil {
		view.Sender = accountViewOf(*snap.Sender)
	}
	if snap.Recipient != nil {
		view.Recipient = accountViewOf(*snap.Recipient)
	}
	if snap.Review != nil {
		view.Review = reviewViewOf(snap.Review)
	}

	return view
}

func reviewViewOf(review *port_transfer.Review) *reviewView {
	return &reviewView{
		IntentID:    review.IntentID,
		FromAccount: review.FromAccount,
		FromHolder:  review.FromHolder,
		ToAccount:   review.ToAccount,
		ToHolder:    review.ToHolder,
		Amount:      review.Amount,
		Description: review.Description,
		Internal:    review.Internal,
	}
}

func noticeViewsOf(notices []port_notify.Notice) []noticeView {
	views := make([]noticeView, 0, len(notices))
	for _, n := range notices {
		views = append(views, noticeView{Kind: string(n.Kind), Message: n.Message})
	}
	return views
}
