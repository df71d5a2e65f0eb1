package services

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// UserSvcFacade covers the minimal user operations the API surface needs.
type UserSvcFacade interface {
	// Authenticate verifies username/password and returns the user.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
