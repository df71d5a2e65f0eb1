package memory

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

type userRepository struct {
	store *store
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.users[user.UserID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.users[user.UserID] = user
	return nil
}
