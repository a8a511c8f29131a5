package profile

import "context"

// Repository is the persistence contract for risk profiles.
type Repository interface {
	// Save inserts a new profile.
	Save(ctx context.Context, p *RiskProfile) error

	// Update replaces an existing profile by id.
	Update(ctx context.Context, p *RiskProfile) error

	// Delete removes a profile by id.
	Delete(ctx context.Context, id string) error

	// FindByID returns the profile with the given id, or a
	// CodeProfileNotFound error.
	FindByID(ctx context.Context, id string) (*RiskProfile, error)

	// List returns all stored profiles.
	List(ctx context.Context) ([]*RiskProfile, error)

	// SetDefault atomically marks the given profile as default and clears
	// the flag on every other profile.
	SetDefault(ctx context.Context, id string) error
}
