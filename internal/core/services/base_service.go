package services

import (
	"sync"
	"time"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	"github.com/google/uuid"
)

// LedgerLock serializes every ledger-mutating operation: transaction creation,
// posting, voiding and period/year closing all acquire it. A single global
// write lock is the simplest discipline that satisfies the atomicity contract;
// ledger write volume is low relative to reads, so contention is acceptable.
//
// Period close in particular must hold the same lock as posting, so that no
// transaction can slip into DRAFT between the open-transactions check and the
// status flip.
type LedgerLock struct {
	sync.Mutex
}

// NewLedgerLock creates the shared write lock for a service container.
func NewLedgerLock() *LedgerLock {
	return &LedgerLock{}
}

// newAuditFields builds audit fields stamped with now/userID for a new entity.
func newAuditFields(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// newAuditEntry builds an audit log entry for a state-changing operation.
func newAuditEntry(action domain.AuditAction, entityType domain.AuditEntityType, entityID, userID, details string, previousState, newState *string) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		AuditID:       uuid.NewString(),
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		UserID:        userID,
		Timestamp:     time.Now().UTC(),
		Details:       details,
		PreviousState: previousState,
		NewState:      newState,
	}
}

// statusSnapshot returns a pointer to the string form of a transaction status,
// for use as an audit state snapshot.
func statusSnapshot(s domain.TransactionStatus) *string {
	v := string(s)
	return &v
}
