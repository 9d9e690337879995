package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
	port_directory "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/directory"
)

var _ port_directory.AccountDirectory = (*Client)(nil)

type accountJSON struct {
	AccountNumber string                      `json:"accountNumber"`
	HolderName    string                      `json:"holderName"`
	AccountType   domain_transfer.AccountType `json:"accountType"`
	Balance       decimal.Decimal             `json:"balance"`
	Active        bool                        `json:"active"`
}

func (a accountJSON) ref() domain_transfer.AccountRef {
	return domain_transfer.AccountRef{
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		HolderName:    a.HolderName,
		Balance:       a.Balance,
		Active:        a.Active,
	}
}

// Lookup implements the account directory port. Concurrent lookups for the
// same account number are collapsed into one backend call. The flight is
// detached from the first caller's cancellation so one cancelled request
// cannot fail the callers collapsed onto it; the http client's timeout
// still bounds the call.
func (c *Client) Lookup(ctx context.Context, accountNumber string) (domain_transfer.AccountRef, error) {
	v, err, _ := c.lookups.Do(accountNumber, func() (any, error) {
		return c.fetchAccount(context.WithoutCancel(ctx), accountNumber)
	})
	if err != nil {
		return domain_transfer.AccountRef{}, err
	}
	return v.(domain_transfer.AccountRef), nil
}

func (c *Client) fetchAccount(ctx context.Context, accountNumber string) (domain_transfer.AccountRef, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/accounts/"+accountNumber, nil)
	if err != nil {
		return domain_transfer.AccountRef{}, err
	}

	var payload accountJSON
	if err := c.doJSON(req, &payload); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return domain_transfer.AccountRef{}, fmt.Errorf("account %s: %w", accountNumber, port_directory.ErrNotFound)
		}
		return domain_transfer.AccountRef{}, err
	}

	return payload.ref(), nil
}
