package services

import (
	"context"
	"fmt"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
)

// authorizationService implements the coarse role checks. The role model is
// deliberately flat: ADMIN everything, APPROVER approves, POSTER posts and
// voids, CLERK only creates and submits.
type authorizationService struct {
	userRepo portsrepo.UserReader
}

// NewAuthorizationService creates the authorization collaborator.
func NewAuthorizationService(userRepo portsrepo.UserReader) portssvc.AuthorizationSvcFacade {
	return &authorizationService{userRepo: userRepo}
}

var _ portssvc.AuthorizationSvcFacade = (*authorizationService)(nil)

func (s *authorizationService) hasAnyRole(ctx context.Context, userID string, roles ...domain.UserRole) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	if !user.IsActive {
		return false, nil
	}
	for _, r := range roles {
		if user.Role == r {
			return true, nil
		}
	}
	return false, nil
}

// CanApprove reports whether the user may approve or reject transactions.
func (s *authorizationService) CanApprove(ctx context.Context, userID string) (bool, error) {
	return s.hasAnyRole(ctx, userID, domain.RoleAdmin, domain.RoleApprover)
}

// CanPost reports whether the user may post approved transactions.
func (s *authorizationService) CanPost(ctx context.Context, userID string) (bool, error) {
	return s.hasAnyRole(ctx, userID, domain.RoleAdmin, domain.RolePoster)
}

// CanVoid reports whether the user may void posted transactions.
func (s *authorizationService) CanVoid(ctx context.Context, userID string) (bool, error) {
	return s.hasAnyRole(ctx, userID, domain.RoleAdmin, domain.RolePoster)
}

// CanClose reports whether the user may manage the fiscal calendar.
func (s *authorizationService) CanClose(ctx context.Context, userID string) (bool, error) {
	return s.hasAnyRole(ctx, userID, domain.RoleAdmin)
}
