package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
)

// CustomerAccounts lists every account the customer owns. The workflow uses
// the numbers to label internal transfers.
func (c *Client) CustomerAccounts(ctx context.Context, customerID string) ([]domain_transfer.AccountRef, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/accounts/customer/"+customerID, nil)
	if err != nil {
		return nil, err
	}

	var payload []accountJSON
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}

	refs := make([]domain_transfer.AccountRef, 0, len(payload))
	for _, a := range payload {
		refs = append(refs, a.ref())
	}
	return refs, nil
}

type movementJSON struct {
	Amount      decimal.Decimal `json:"amount"`
	PIN         string          `json:"pin,omitempty"`
	Description string          `json:"description,omitempty"`
}

type movementResultJSON struct {
	Balance       decimal.Decimal `json:"balance"`
	TransactionID string          `json:"transactionId"`
}

// Deposit credits the account and returns its new balance.
func (c *Client) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	return c.move(ctx, accountNumber, "deposit", movementJSON{Amount: amount, Description: description})
}

// Withdraw debits the account after the backend verifies the PIN.
func (c *Client) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, pin, description string) (decimal.Decimal, error) {
	return c.move(ctx, accountNumber, "withdraw", movementJSON{Amount: amount, PIN: pin, Description: description})
}

func (c *Client) move(ctx context.Context, accountNumber, action string, body movementJSON) (decimal.Decimal, error) {
	path := "/accounts/" + url.PathEscape(accountNumber) + "/" + action
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var result movementResultJSON
	if err := c.doJSON(req, &result); err != nil {
		return decimal.Decimal{}, err
	}

	return result.Balance, nil
}
