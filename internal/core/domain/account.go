package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the read-only view of a chart-of-accounts entry consumed by the
// ledger core. The registry itself is owned by an external collaborator; the
// core only needs identity, type and cash-account linkage.
type Account struct {
	AccountID     string      `json:"accountID"`     // Primary Key (e.g., UUID)
	Code          string      `json:"code"`          // Chart-of-accounts code, e.g. "1010"
	Name          string      `json:"name"`          // User-defined name
	AccountType   AccountType `json:"accountType"`   // ASSET, LIABILITY, etc.
	IsCashAccount bool        `json:"isCashAccount"` // Eligible for bank linkage
	IsActive      bool        `json:"isActive"`      // Inactive accounts reject new entries
	AuditFields
}
