package repositories

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// AccountReader defines the read-only chart-of-accounts lookups the ledger
// core consumes. Account management itself belongs to an external collaborator;
// no writer interface exists here.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves accounts for the given IDs, keyed by ID.
	// Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountRepositoryFacade is the chart-of-accounts repository interface.
type AccountRepositoryFacade interface {
	AccountReader
}
