package domain

import "time"

// AuditAction tags the kind of state change an audit entry records.
type AuditAction string

const (
	ActionCreate  AuditAction = "CREATE"
	ActionUpdate  AuditAction = "UPDATE"
	ActionSubmit  AuditAction = "SUBMIT"
	ActionApprove AuditAction = "APPROVE"
	ActionReject  AuditAction = "REJECT"
	ActionPost    AuditAction = "POST"
	ActionVoid    AuditAction = "VOID"
	ActionOpen    AuditAction = "OPEN"
	ActionClose   AuditAction = "CLOSE"
)

// AuditEntityType identifies which aggregate an audit entry refers to.
type AuditEntityType string

const (
	EntityTransaction  AuditEntityType = "TRANSACTION"
	EntityFiscalYear   AuditEntityType = "FISCAL_YEAR"
	EntityFiscalPeriod AuditEntityType = "FISCAL_PERIOD"
)

// AuditLogEntry is one immutable record of a state-changing operation.
// Entries are append-only: no update or delete path exists anywhere in the
// system, by design.
type AuditLogEntry struct {
	AuditID       string          `json:"auditID"` // Primary Key (e.g., UUID)
	Action        AuditAction     `json:"action"`
	EntityType    AuditEntityType `json:"entityType"`
	EntityID      string          `json:"entityID"`
	UserID        string          `json:"userID"` // Acting user
	Timestamp     time.Time       `json:"timestamp"`
	Details       string          `json:"details"`                 // Human-readable summary
	PreviousState *string         `json:"previousState,omitempty"` // Serialized snapshot
	NewState      *string         `json:"newState,omitempty"`      // Serialized snapshot
}
