package ports

import (
	"context"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

// IdentityRepository defines persistence for authenticated identities.
type IdentityRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
}
