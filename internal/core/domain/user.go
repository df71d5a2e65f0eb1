package domain

// UserRole is the coarse role used for ledger permission checks.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"    // May do everything, including closing periods/years
	RoleApprover UserRole = "APPROVER" // May approve and reject submitted transactions
	RolePoster   UserRole = "POSTER"   // May post approved and void posted transactions
	RoleClerk    UserRole = "CLERK"    // May create and submit transactions
)

// User is an authenticated actor. The ledger core only needs identity and a
// coarse role; everything else about users lives outside this system.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
