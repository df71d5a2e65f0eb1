package dto

import (
	"time"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// AuditEntryResponse is the API representation of an audit log entry.
type AuditEntryResponse struct {
	AuditID       string    `json:"auditID"`
	Action        string    `json:"action"`
	EntityType    string    `json:"entityType"`
	EntityID      string    `json:"entityID"`
	UserID        string    `json:"userID"`
	Timestamp     time.Time `json:"timestamp"`
	Details       string    `json:"details"`
	PreviousState *string   `json:"previousState,omitempty"`
	NewState      *string   `json:"newState,omitempty"`
}

// ToAuditEntryResponses converts domain audit entries to their API representation.
func ToAuditEntryResponses(entries []domain.AuditLogEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse{
			AuditID:       e.AuditID,
			Action:        string(e.Action),
			EntityType:    string(e.EntityType),
			EntityID:      e.EntityID,
			UserID:        e.UserID,
			Timestamp:     e.Timestamp,
			Details:       e.Details,
			PreviousState: e.PreviousState,
			NewState:      e.NewState,
		}
	}
	return out
}
