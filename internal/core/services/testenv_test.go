package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/finacct/general_ledger_app/internal/adapters/database/memory"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/core/services"
	"github.com/finacct/general_ledger_app/internal/dto"
	"github.com/finacct/general_ledger_app/internal/utils"
)

const (
	adminID    = "user-admin"
	approverID = "user-approver"
	posterID   = "user-poster"
	clerkID    = "user-clerk"
	inactiveID = "user-dormant"

	cashAccountID     = "acc-cash"
	revenueAccountID  = "acc-revenue"
	expenseAccountID  = "acc-expense"
	inactiveAccountID = "acc-retired"

	testPassword = "correct horse battery staple"
)

// testEnv wires the full service container over the in-memory adapter with a
// seeded chart of accounts, users of every role and an open fiscal year 2026
// with periods 1-3 (January through March).
type testEnv struct {
	ctx      context.Context
	repos    *portsrepo.RepositoryProvider
	services *portssvc.ServiceContainer

	year    *domain.FiscalYear
	periods []domain.FiscalPeriod
}

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	repos := memory.NewRepositoryProvider()
	container := services.NewContainer(repos)

	seedUser(t, ctx, repos, adminID, "alice.admin", domain.RoleAdmin, true)
	seedUser(t, ctx, repos, approverID, "bob.approver", domain.RoleApprover, true)
	seedUser(t, ctx, repos, posterID, "carol.poster", domain.RolePoster, true)
	seedUser(t, ctx, repos, clerkID, "dave.clerk", domain.RoleClerk, true)
	seedUser(t, ctx, repos, inactiveID, "eve.former", domain.RoleAdmin, false)

	seedAccount(repos, cashAccountID, "1010", "Operating Cash", domain.Asset, true, true)
	seedAccount(repos, revenueAccountID, "4000", "Tuition Revenue", domain.Revenue, false, true)
	seedAccount(repos, expenseAccountID, "5100", "Office Supplies", domain.Expense, false, true)
	seedAccount(repos, inactiveAccountID, "1900", "Retired Clearing", domain.Asset, false, false)

	env := &testEnv{ctx: ctx, repos: repos, services: container}

	year, err := container.Fiscal.CreateYear(ctx, dto.CreateFiscalYearRequest{
		Name:      "FY 2026",
		StartDate: day(time.January, 1),
		EndDate:   day(time.December, 31),
	}, adminID)
	require.NoError(t, err)

	months := []struct {
		number int
		start  time.Time
		end    time.Time
	}{
		{1, day(time.January, 1), day(time.January, 31)},
		{2, day(time.February, 1), day(time.February, 28)},
		{3, day(time.March, 1), day(time.March, 31)},
	}
	for _, m := range months {
		period, err := container.Fiscal.CreatePeriod(ctx, dto.CreateFiscalPeriodRequest{
			FiscalYearID: year.FiscalYearID,
			PeriodNumber: m.number,
			StartDate:    m.start,
			EndDate:      m.end,
		}, adminID)
		require.NoError(t, err)
		env.periods = append(env.periods, *period)
	}

	opened, err := container.Fiscal.OpenYear(ctx, year.FiscalYearID, adminID)
	require.NoError(t, err)
	env.year = opened

	return env
}

func seedUser(t *testing.T, ctx context.Context, repos *portsrepo.RepositoryProvider, userID, username string, role domain.UserRole, active bool) {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, repos.UserRepo.SaveUser(ctx, domain.User{
		UserID:       userID,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}))
}

func seedAccount(repos *portsrepo.RepositoryProvider, accountID, code, name string, accType domain.AccountType, cash, active bool) {
	memory.SeedAccount(repos, domain.Account{
		AccountID:     accountID,
		Code:          code,
		Name:          name,
		AccountType:   accType,
		IsCashAccount: cash,
		IsActive:      active,
	})
}

// balancedEntries builds a cash debit matched by a revenue credit.
func balancedEntries(amount int64) []dto.CreateTransactionEntryRequest {
	return []dto.CreateTransactionEntryRequest{
		{AccountID: cashAccountID, Description: "cash received", DebitAmount: decimal.NewFromInt(amount)},
		{AccountID: revenueAccountID, Description: "tuition earned", CreditAmount: decimal.NewFromInt(amount)},
	}
}

// createTransaction creates a balanced transaction dated in period 1.
func (env *testEnv) createTransaction(t *testing.T, submit bool, amount int64) *domain.Transaction {
	t.Helper()
	return env.createTransactionOn(t, submit, amount, day(time.January, 15))
}

func (env *testEnv) createTransactionOn(t *testing.T, submit bool, amount int64, date time.Time) *domain.Transaction {
	t.Helper()
	txn, err := env.services.Ledger.CreateTransaction(env.ctx, dto.CreateTransactionRequest{
		TransactionType:   domain.JournalEntry,
		TransactionDate:   date,
		Description:       "tuition receipt",
		Reference:         "RCPT-001",
		SubmitForApproval: submit,
		Entries:           balancedEntries(amount),
	}, clerkID)
	require.NoError(t, err)
	return txn
}

// postedTransaction runs the full create -> approve -> post flow.
func (env *testEnv) postedTransaction(t *testing.T, amount int64, date time.Time) *domain.Transaction {
	t.Helper()
	txn := env.createTransactionOn(t, true, amount, date)
	_, err := env.services.Ledger.ApproveTransaction(env.ctx, txn.TransactionID, approverID)
	require.NoError(t, err)
	posted, err := env.services.Posting.PostTransaction(env.ctx, txn.TransactionID, posterID)
	require.NoError(t, err)
	return posted
}

func (env *testEnv) balance(t *testing.T, accountID, fiscalPeriodID string) *domain.AccountBalance {
	t.Helper()
	bal, err := env.services.Balance.GetBalance(env.ctx, accountID, env.year.FiscalYearID, fiscalPeriodID)
	require.NoError(t, err)
	return bal
}
