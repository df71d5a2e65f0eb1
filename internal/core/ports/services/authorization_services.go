package services

import "context"

// AuthorizationSvcFacade performs the coarse role checks gating lifecycle
// transitions. Fine-grained authorization is out of scope for the ledger core.
type AuthorizationSvcFacade interface {
	// CanApprove reports whether the user may approve or reject transactions.
	CanApprove(ctx context.Context, userID string) (bool, error)

	// CanPost reports whether the user may post approved transactions.
	CanPost(ctx context.Context, userID string) (bool, error)

	// CanVoid reports whether the user may void posted transactions.
	CanVoid(ctx context.Context, userID string) (bool, error)

	// CanClose reports whether the user may close fiscal periods and years.
	CanClose(ctx context.Context, userID string) (bool, error)
}
