package services

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// PostingSvcFacade is the posting coordinator: the only component that makes a
// transaction's effect visible in account balances. Post and Void are atomic;
// no caller ever observes a POSTED transaction without its balance deltas
// applied, or vice versa.
type PostingSvcFacade interface {
	// PostTransaction transitions APPROVED -> POSTED and applies every entry's
	// raw debit-minus-credit delta to the account balance ledger.
	PostTransaction(ctx context.Context, transactionID string, posterUserID string) (*domain.Transaction, error)

	// VoidTransaction transitions POSTED -> VOIDED, reversing the balance
	// impact against the transaction's original fiscal period. A DRAFT
	// transaction may also be voided (discarded) with no balance impact.
	VoidTransaction(ctx context.Context, transactionID string, voiderUserID string, reason string) (*domain.Transaction, error)
}
