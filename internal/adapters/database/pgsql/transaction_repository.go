package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

// PgxTransactionRepository persists ledger transactions and their entry lines.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, transaction_type, transaction_date, description, reference, amount, status,
	fiscal_year_id, fiscal_period_id, approved_by, approved_at, posted_at, voided_by, voided_at,
	void_reason, reject_reason, created_at, created_by, last_updated_at, last_updated_by
`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.TransactionType,
		&txn.TransactionDate,
		&txn.Description,
		&txn.Reference,
		&txn.Amount,
		&txn.Status,
		&txn.FiscalYearID,
		&txn.FiscalPeriodID,
		&txn.ApprovedBy,
		&txn.ApprovedAt,
		&txn.PostedAt,
		&txn.VoidedBy,
		&txn.VoidedAt,
		&txn.VoidReason,
		&txn.RejectReason,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
	}
	return &txn, nil
}

const entryColumns = `
	entry_id, transaction_id, account_id, description, debit_amount, credit_amount,
	created_at, created_by, last_updated_at, last_updated_by
`

// loadEntries fetches entry lines for the given transactions and attaches them
// in place, keyed by transaction ID.
func (r *PgxTransactionRepository) loadEntries(ctx context.Context, txns []*domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Transaction, len(txns))
	ids := make([]string, 0, len(txns))
	for _, txn := range txns {
		byID[txn.TransactionID] = txn
		ids = append(ids, txn.TransactionID)
	}

	query := `SELECT ` + entryColumns + ` FROM transaction_entries WHERE transaction_id = ANY($1) ORDER BY created_at, entry_id;`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to load transaction entries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.TransactionEntry
		err := rows.Scan(
			&entry.EntryID,
			&entry.TransactionID,
			&entry.AccountID,
			&entry.Description,
			&entry.DebitAmount,
			&entry.CreditAmount,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to scan transaction entry", err)
		}
		if txn, ok := byID[entry.TransactionID]; ok {
			txn.Entries = append(txn.Entries, entry)
		}
	}
	return rows.Err()
}

// FindTransactionByID retrieves a transaction with its entry lines.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, err
	}
	if err := r.loadEntries(ctx, []*domain.Transaction{txn}); err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var ptrs []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transactions", err)
	}

	if err := r.loadEntries(ctx, ptrs); err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, 0, len(ptrs))
	for _, txn := range ptrs {
		txns = append(txns, *txn)
	}
	return txns, nil
}

// ListTransactionsByFiscalYear retrieves all transactions scoped to a fiscal year.
func (r *PgxTransactionRepository) ListTransactionsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE fiscal_year_id = $1 ORDER BY transaction_date, transaction_id;`
	return r.listTransactions(ctx, query, fiscalYearID)
}

// ListTransactionsByFiscalPeriod retrieves all transactions scoped to a fiscal period.
func (r *PgxTransactionRepository) ListTransactionsByFiscalPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE fiscal_period_id = $1 ORDER BY transaction_date, transaction_id;`
	return r.listTransactions(ctx, query, fiscalPeriodID)
}

// ListTransactionsByAccount retrieves transactions with at least one entry
// touching the account.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE transaction_id IN (SELECT DISTINCT transaction_id FROM transaction_entries WHERE account_id = $1)
		ORDER BY transaction_date, transaction_id;
	`
	return r.listTransactions(ctx, query, accountID)
}

// ListTransactionsByType retrieves all transactions of the given type.
func (r *PgxTransactionRepository) ListTransactionsByType(ctx context.Context, transactionType domain.TransactionType) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_type = $1 ORDER BY transaction_date, transaction_id;`
	return r.listTransactions(ctx, query, transactionType)
}

// ListTransactionsByStatus retrieves all transactions in the given status.
func (r *PgxTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 ORDER BY transaction_date, transaction_id;`
	return r.listTransactions(ctx, query, status)
}

// CountTransactionsByPeriodAndStatuses counts transactions in the period whose
// status is one of the given statuses.
func (r *PgxTransactionRepository) CountTransactionsByPeriodAndStatuses(ctx context.Context, fiscalPeriodID string, statuses []domain.TransactionStatus) (int, error) {
	statusStrings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	query := `SELECT COUNT(*) FROM transactions WHERE fiscal_period_id = $1 AND status = ANY($2);`
	var count int
	if err := r.Pool.QueryRow(ctx, query, fiscalPeriodID, statusStrings).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count transactions for period "+fiscalPeriodID, err)
	}
	return count, nil
}

// SaveTransaction persists a new transaction header, its entry lines and the
// audit entry within one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, headerQuery,
		txn.TransactionID,
		txn.TransactionType,
		txn.TransactionDate,
		txn.Description,
		txn.Reference,
		txn.Amount,
		txn.Status,
		txn.FiscalYearID,
		txn.FiscalPeriodID,
		txn.ApprovedBy,
		txn.ApprovedAt,
		txn.PostedAt,
		txn.VoidedBy,
		txn.VoidedAt,
		txn.VoidReason,
		txn.RejectReason,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO transaction_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, entry := range txn.Entries {
		batch.Queue(entryQuery,
			entry.EntryID,
			entry.TransactionID,
			entry.AccountID,
			entry.Description,
			entry.DebitAmount,
			entry.CreditAmount,
			entry.CreatedAt,
			entry.CreatedBy,
			entry.LastUpdatedAt,
			entry.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert entries for transaction "+txn.TransactionID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

const updateLifecycleQuery = `
	UPDATE transactions SET
		status = $2, approved_by = $3, approved_at = $4, posted_at = $5,
		voided_by = $6, voided_at = $7, void_reason = $8, reject_reason = $9,
		last_updated_at = $10, last_updated_by = $11
	WHERE transaction_id = $1;
`

func updateLifecycleTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	tag, err := tx.Exec(ctx, updateLifecycleQuery,
		txn.TransactionID,
		txn.Status,
		txn.ApprovedBy,
		txn.ApprovedAt,
		txn.PostedAt,
		txn.VoidedBy,
		txn.VoidedAt,
		txn.VoidReason,
		txn.RejectReason,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateTransactionStatus persists a lifecycle metadata update with its audit
// entry. Entry lines are immutable and not touched.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateLifecycleTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MarkPosted flips the transaction to POSTED, applies every balance delta and
// appends the audit entry as one database transaction.
func (r *PgxTransactionRepository) MarkPosted(ctx context.Context, txn domain.Transaction, deltas []domain.BalanceDelta, audit domain.AuditLogEntry) error {
	return r.applyLifecycleWithDeltas(ctx, txn, deltas, audit)
}

// MarkVoided mirrors MarkPosted for the VOIDED transition. Deltas are empty
// when voiding a draft.
func (r *PgxTransactionRepository) MarkVoided(ctx context.Context, txn domain.Transaction, deltas []domain.BalanceDelta, audit domain.AuditLogEntry) error {
	return r.applyLifecycleWithDeltas(ctx, txn, deltas, audit)
}

func (r *PgxTransactionRepository) applyLifecycleWithDeltas(ctx context.Context, txn domain.Transaction, deltas []domain.BalanceDelta, audit domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateLifecycleTx(ctx, tx, txn); err != nil {
		return err
	}

	for _, delta := range deltas {
		if err := applyDeltaTx(ctx, tx, delta); err != nil {
			return err
		}
	}

	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
