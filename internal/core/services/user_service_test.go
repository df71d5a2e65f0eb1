package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
)

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.services.User.Authenticate(env.ctx, "dave.clerk", testPassword)
	require.NoError(t, err)
	assert.Equal(t, clerkID, user.UserID)
	assert.Equal(t, domain.RoleClerk, user.Role)
}

func TestAuthenticateFailures(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "dave.clerk", "not the password"},
		{"unknown user", "nobody", testPassword},
		{"inactive user", "eve.former", testPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.services.User.Authenticate(env.ctx, tc.username, tc.password)
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
		})
	}
}

func TestGetUserByID(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.services.User.GetUserByID(env.ctx, approverID)
	require.NoError(t, err)
	assert.Equal(t, "bob.approver", user.Username)

	_, err = env.services.User.GetUserByID(env.ctx, "user-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthorizationRoleMatrix(t *testing.T) {
	env := newTestEnv(t)
	authz := env.services.Authorization

	cases := []struct {
		userID     string
		canApprove bool
		canPost    bool
		canVoid    bool
		canClose   bool
	}{
		{adminID, true, true, true, true},
		{approverID, true, false, false, false},
		{posterID, false, true, true, false},
		{clerkID, false, false, false, false},
		{inactiveID, false, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.userID, func(t *testing.T) {
			got, err := authz.CanApprove(env.ctx, tc.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.canApprove, got, "CanApprove")

			got, err = authz.CanPost(env.ctx, tc.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.canPost, got, "CanPost")

			got, err = authz.CanVoid(env.ctx, tc.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.canVoid, got, "CanVoid")

			got, err = authz.CanClose(env.ctx, tc.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.canClose, got, "CanClose")
		})
	}
}
