package port_directory

import (
	"context"
	"errors"

	domain_transfer "github.com/Rea1521/mahlangu-capital-bank/internal/domain/transfer"
)

var ErrNotFound = errors.New("directory: account not found")

// AccountDirectory resolves an account number to its holder, type, status
// and last-known balance. Transport failures are returned as-is; callers
// decide whether to fail closed.
type AccountDirectory interface {
	Lookup(ctx context.Context, accountNumber string) (domain_transfer.AccountRef, error)
}
