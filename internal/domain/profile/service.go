package profile

import (
	"context"

	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

// Service defines the domain service for risk profile management.
type Service interface {
	Create(ctx context.Context, p *RiskProfile) (*RiskProfile, error)
	Update(ctx context.Context, p *RiskProfile) (*RiskProfile, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*RiskProfile, error)
	List(ctx context.Context) ([]*RiskProfile, error)
	SetDefault(ctx context.Context, id string) error

	// ActiveProfile resolves the profile screening should apply: the single
	// default profile, nil when no default exists (fail-open: callers apply
	// no filtering), or ErrMultipleDefaultProfiles when the store is
	// inconsistent.
	ActiveProfile(ctx context.Context) (*RiskProfile, error)
}

type service struct {
	repo   Repository
	logger logging.Logger
}

// NewService creates a profile Service backed by repo.
func NewService(repo Repository, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &service{repo: repo, logger: logger.Named("profile")}
}

func (s *service) Create(ctx context.Context, p *RiskProfile) (*RiskProfile, error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeProfileInvalid, "profile is nil")
	}
	if p.ID == "" {
		fresh := New(p.Name)
		p.ID = fresh.ID
		p.CreatedAt = fresh.CreatedAt
		p.UpdatedAt = fresh.UpdatedAt
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsDefault {
		if err := s.rejectSecondDefault(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("risk profile created",
		logging.String("profile_id", p.ID),
		logging.String("name", p.Name),
		logging.Bool("is_default", p.IsDefault),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, p *RiskProfile) (*RiskProfile, error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeProfileInvalid, "profile is nil")
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsDefault {
		if err := s.rejectSecondDefault(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("risk profile updated", logging.String("profile_id", p.ID))
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidParam("profile id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("risk profile deleted", logging.String("profile_id", id))
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*RiskProfile, error) {
	if id == "" {
		return nil, errors.InvalidParam("profile id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*RiskProfile, error) {
	return s.repo.List(ctx)
}

func (s *service) SetDefault(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidParam("profile id is required")
	}
	if err := s.repo.SetDefault(ctx, id); err != nil {
		return err
	}
	s.logger.Info("default risk profile changed", logging.String("profile_id", id))
	return nil
}

func (s *service) ActiveProfile(ctx context.Context) (*RiskProfile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDBQueryError, "failed to list profiles for default resolution")
	}
	active, err := DefaultProfile(profiles)
	if err != nil {
		// Inconsistent store: report, never guess.
		s.logger.Error("default profile resolution failed", logging.Err(err))
		return nil, err
	}
	if active == nil {
		s.logger.Warn("no default risk profile configured; screening will not filter factors")
	}
	return active, nil
}

// rejectSecondDefault fails when a different profile already holds the
// default flag. Administrators change the default via SetDefault, which
// clears other flags atomically; Create/Update must not introduce a second
// default through the side door.
func (s *service) rejectSecondDefault(ctx context.Context, selfID string) error {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CodeDBQueryError, "failed to check existing default profile")
	}
	for _, existing := range profiles {
		if existing.IsDefault && existing.ID != selfID {
			return errors.New(errors.ErrCodeProfileMultipleDefaults,
				"another profile is already flagged as default").
				WithDetail("existing default: " + existing.ID)
		}
	}
	return nil
}
