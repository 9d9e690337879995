package restapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one ledger movement as the backend reports it.
type Transaction struct {
	TransactionID   string          `json:"transactionId"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ToAccountNumber string          `json:"toAccountNumber,omitempty"`
	BalanceAfter    decimal.Decimal `json:"balanceAfterTransaction"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// Transactions returns the account's history, newest first.
func (c *Client) Transactions(ctx context.Context, accountNumber string) ([]Transaction, error) {
	return c.fetchTransactions(ctx, "/transactions/account/"+url.PathEscape(accountNumber))
}

// TransactionsByDateRange returns the history restricted to [start, end],
// dates formatted yyyy-mm-dd.
func (c *Client) TransactionsByDateRange(ctx context.Context, accountNumber string, start, end time.Time) ([]Transaction, error) {
	path := fmt.Sprintf("/transactions/account/%s/daterange?startDate=%s&endDate=%s",
		url.PathEscape(accountNumber),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))
	return c.fetchTransactions(ctx, path)
}

func (c *Client) fetchTransactions(ctx context.Context, path string) ([]Transaction, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var payload []Transaction
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// DownloadStatement streams the backend-rendered PDF statement. The caller
// owns the returned reader and must close it.
func (c *Client) DownloadStatement(ctx context.Context, accountNumber string, start, end time.Time) (io.ReadCloser, error) {
	path := fmt.Sprintf("/statements/%s/pdf?startDate=%s&endDate=%s",
		url.PathEscape(accountNumber),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download statement: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.apiError(resp)
	}

	return resp.Body, nil
}
