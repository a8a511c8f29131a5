package repositories

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

type profileRepo struct {
	db  beginner
	log logging.Logger
}

// NewProfileRepo creates the PostgreSQL-backed profile repository.
func NewProfileRepo(db beginner, log logging.Logger) profile.Repository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &profileRepo{db: db, log: log.Named("profile_repo")}
}

const profileColumns = `id, name, description, enabled_factors, is_default,
	risk_scoring_enabled, risk_threshold, risk_scores, categories,
	created_at, updated_at`

func (r *profileRepo) Save(ctx context.Context, p *profile.RiskProfile) error {
	scores, err := json.Marshal(p.RiskScores)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode risk scores")
	}
	categories, err := json.Marshal(p.Categories)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode categories")
	}

	query := `
		INSERT INTO risk_profiles (
			id, name, description, enabled_factors, is_default,
			risk_scoring_enabled, risk_threshold, risk_scores, categories,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.EnabledFactors, p.IsDefault,
		p.RiskScoringEnabled, p.RiskThreshold, scores, categories,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.New(errors.ErrCodeProfileAlreadyExists, "risk profile already exists").
				WithDetail("id: " + p.ID)
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save risk profile")
	}
	return nil
}

func (r *profileRepo) Update(ctx context.Context, p *profile.RiskProfile) error {
	scores, err := json.Marshal(p.RiskScores)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode risk scores")
	}
	categories, err := json.Marshal(p.Categories)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode categories")
	}

	query := `
		UPDATE risk_profiles
		SET name = $2, description = $3, enabled_factors = $4, is_default = $5,
			risk_scoring_enabled = $6, risk_threshold = $7, risk_scores = $8,
			categories = $9, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.EnabledFactors, p.IsDefault,
		p.RiskScoringEnabled, p.RiskThreshold, scores, categories,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update risk profile")
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("risk profile not found").WithDetail("id: " + p.ID)
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM risk_profiles WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete risk profile")
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("risk profile not found").WithDetail("id: " + id)
	}
	return nil
}

func (r *profileRepo) FindByID(ctx context.Context, id string) (*profile.RiskProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM risk_profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound("risk profile not found").WithDetail("id: " + id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load risk profile")
	}
	return p, nil
}

func (r *profileRepo) List(ctx context.Context) ([]*profile.RiskProfile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM risk_profiles ORDER BY created_at`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list risk profiles")
	}
	defer rows.Close()

	var profiles []*profile.RiskProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan risk profile")
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate risk profiles")
	}
	return profiles, nil
}

// SetDefault flags the given profile as default and clears the flag on all
// others in a single transaction, so at most one default can be observed.
func (r *profileRepo) SetDefault(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE risk_profiles SET is_default = FALSE, updated_at = NOW() WHERE is_default`); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to clear default flags")
	}

	tag, err := tx.Exec(ctx,
		`UPDATE risk_profiles SET is_default = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to set default profile")
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("risk profile not found").WithDetail("id: " + id)
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to commit default change")
	}

	r.log.Info("default profile changed", logging.String("profile_id", id))
	return nil
}

func scanProfile(row pgx.Row) (*profile.RiskProfile, error) {
	var (
		p          profile.RiskProfile
		scores     []byte
		categories []byte
		createdAt  time.Time
		updatedAt  time.Time
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.EnabledFactors, &p.IsDefault,
		&p.RiskScoringEnabled, &p.RiskThreshold, &scores, &categories,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &p.RiskScores); err != nil {
			return nil, err
		}
	}
	if p.RiskScores == nil {
		p.RiskScores = map[string]int{}
	}
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &p.Categories); err != nil {
			return nil, err
		}
	}
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == "23505"
}
