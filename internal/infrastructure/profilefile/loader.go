// Package profilefile loads declarative risk profile definitions from YAML
// files. Parsing is deliberately permissive: malformed numeric fields are
// coerced to safe values rather than rejected, so a typo in a profile file
// degrades a score instead of taking screening down.
package profilefile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

// Loader reads risk profiles from disk.
type Loader struct {
	logger logging.Logger
}

// NewLoader creates a profile file loader.
func NewLoader(log logging.Logger) *Loader {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Loader{logger: log.Named("profilefile")}
}

// LoadFile reads one profile definition from a YAML file.
func (l *Loader) LoadFile(path string) (*profile.RiskProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProfileParseFailed, "failed to read profile file").
			WithDetail(path)
	}
	p := l.fromViper(v, path)
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadDir reads every .yaml/.yml file in dir as a profile definition.
// More than one profile flagged default is reported as a configuration
// error, never resolved by picking one.
func (l *Loader) LoadDir(dir string) ([]*profile.RiskProfile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProfileParseFailed, "failed to read profile directory").
			WithDetail(dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	profiles := make([]*profile.RiskProfile, 0, len(names))
	for _, name := range names {
		p, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if _, err := profile.DefaultProfile(profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// fromViper maps the parsed file onto a RiskProfile, coercing malformed
// fields instead of failing.
func (l *Loader) fromViper(v *viper.Viper, path string) *profile.RiskProfile {
	now := time.Now().UTC()
	p := &profile.RiskProfile{
		ID:                 v.GetString("id"),
		Name:               v.GetString("name"),
		Description:        v.GetString("description"),
		EnabledFactors:     v.GetStringSlice("enabled_factors"),
		IsDefault:          v.GetBool("is_default"),
		RiskScoringEnabled: v.GetBool("risk_scoring_enabled"),
		RiskThreshold:      v.GetInt("risk_threshold"),
		RiskScores:         map[string]int{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	for key, raw := range v.GetStringMap("risk_scores") {
		score, err := cast.ToIntE(raw)
		if err != nil {
			l.logger.Warn("malformed risk score coerced to 0",
				logging.String("file", path),
				logging.String("factor", key),
				logging.Any("value", raw),
			)
			score = 0
		}
		p.RiskScores[key] = score
	}

	categories := v.GetStringMap("categories")
	if len(categories) > 0 {
		p.Categories = make(map[string]profile.CategoryConfig, len(categories))
		for key := range categories {
			sub := v.Sub("categories." + key)
			if sub == nil {
				continue
			}
			p.Categories[key] = profile.CategoryConfig{
				Name:        sub.GetString("name"),
				Description: sub.GetString("description"),
				Enabled:     sub.GetBool("enabled"),
			}
		}
	}
	return p
}
