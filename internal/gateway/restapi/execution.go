package restapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
	port_execution "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/execution"
)

var _ port_execution.TransferExecutor = (*Client)(nil)

type transferJSON struct {
	FromAccount string          `json:"fromAccount"`
	ToAccount   string          `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
	PIN         string          `json:"pin"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

type transferResultJSON struct {
	Success            bool            `json:"success"`
	Error              string          `json:"error"`
	FromAccountBalance decimal.Decimal `json:"fromAccountBalance"`
	FromTransactionID  string          `json:"fromTransactionId"`
	RecipientName      string          `json:"recipientName"`
	InternalTransfer   bool            `json:"internalTransfer"`
}

// Commit implements the transfer execution port. The backend is the sole
// source of truth: a transfer counts as done only when the response
// explicitly says success. An explicit refusal comes back as a
// *domain_transfer.Rejection; anything else is a transport failure.
func (c *Client) Commit(ctx context.Context, order port_execution.Order) (port_execution.Receipt, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/transactions/transfer", transferJSON{
		FromAccount: order.FromAccount,
		ToAccount:   order.ToAccount,
		Amount:      order.Amount,
		PIN:         order.PIN,
		Description: order.Description,
		Reference:   order.Reference,
	})
	if err != nil {
		return port_execution.Receipt{}, err
	}

	var result transferResultJSON
	if err := c.doJSON(req, &result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return port_execution.Receipt{}, &domain_transfer.Rejection{
				Code:    domain_transfer.CodeCommitRejected,
				Message: apiErr.Message,
			}
		}
		return port_execution.Receipt{}, err
	}

	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "transfer refused by the banking service"
		}
		return port_execution.Receipt{}, &domain_transfer.Rejection{
			Code:    domain_transfer.CodeCommitRejected,
			Message: msg,
		}
	}

	return port_execution.Receipt{
		TransactionID:      result.FromTransactionID,
		FromAccountBalance: result.FromAccountBalance,
		RecipientName:      result.RecipientName,
		InternalTransfer:   result.InternalTransfer,
	}, nil
}
