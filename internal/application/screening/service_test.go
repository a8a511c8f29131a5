package screening

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumenrisk/entity-screening/internal/domain/factor"
	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/database/redis"
	"github.com/lumenrisk/entity-screening/internal/infrastructure/monitoring/logging"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) Create(ctx context.Context, p *profile.RiskProfile) (*profile.RiskProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.RiskProfile), args.Error(1)
}

func (m *mockProfiles) Update(ctx context.Context, p *profile.RiskProfile) (*profile.RiskProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.RiskProfile), args.Error(1)
}

func (m *mockProfiles) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProfiles) Get(ctx context.Context, id string) (*profile.RiskProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.RiskProfile), args.Error(1)
}

func (m *mockProfiles) List(ctx context.Context) ([]*profile.RiskProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile.RiskProfile), args.Error(1)
}

func (m *mockProfiles) SetDefault(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProfiles) ActiveProfile(ctx context.Context) (*profile.RiskProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.RiskProfile), args.Error(1)
}

func screeningProfile() *profile.RiskProfile {
	return &profile.RiskProfile{
		ID:                 "prof-1",
		Name:               "Baseline",
		IsDefault:          true,
		EnabledFactors:     []string{"ofac_sdn_sanctioned", "pep"},
		RiskScoringEnabled: true,
		RiskThreshold:      5,
		RiskScores: map[string]int{
			"ofac_sdn_sanctioned": 10,
			"pep":                 3,
		},
	}
}

func newService(profiles profile.Service, opts Options) Service {
	return NewService(profiles, logging.NewNopLogger(), opts)
}

func TestAssess_RequiresEntityID(t *testing.T) {
	svc := newService(new(mockProfiles), Options{})

	_, err := svc.Assess(context.Background(), AssessmentRequest{})

	assert.True(t, errors.IsCode(err, errors.ErrCodeAssessmentInputInvalid))
}

func TestAssess_FullPipeline(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("ActiveProfile", mock.Anything).Return(screeningProfile(), nil)

	svc := newService(profiles, Options{})
	got, err := svc.Assess(context.Background(), AssessmentRequest{
		EntityID:  "ent-1",
		FactorIDs: []string{"ofac_sdn_sanctioned", "pep", "unlisted_factor", "pep"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ent-1", got.EntityID)
	assert.Equal(t, "prof-1", got.ProfileID)

	// unlisted_factor is dropped by the profile filter.
	assert.Equal(t, 13, got.Score.TotalScore)
	assert.True(t, got.Score.MeetsThreshold)
	assert.Equal(t, 5, got.Score.Threshold)
	require.Len(t, got.Score.TriggeredRiskFactors, 2)

	// Classification groups: sanctions before political_exposure.
	require.Len(t, got.Categories, 2)
	assert.Equal(t, factor.CategorySanctions, got.Categories[0].Category)
	assert.Equal(t, factor.CategoryPoliticalExposure, got.Categories[1].Category)
	assert.Equal(t, "Ofac Sdn Sanctioned", got.Categories[0].Factors[0].Label)
	assert.Equal(t, factor.SeverityCritical, got.MaxSeverity)
	assert.False(t, got.AssessedAt.IsZero())
}

func TestAssess_NoDefaultProfileFailsOpen(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("ActiveProfile", mock.Anything).Return(nil, nil)

	svc := newService(profiles, Options{})
	got, err := svc.Assess(context.Background(), AssessmentRequest{
		EntityID:  "ent-1",
		FactorIDs: []string{"pep", "totally_unknown_xyz_123"},
	})
	require.NoError(t, err)

	// No filtering applied, scoring disabled result.
	assert.Empty(t, got.ProfileID)
	assert.Zero(t, got.Score.TotalScore)
	assert.Zero(t, got.Score.Threshold)
	assert.False(t, got.Score.MeetsThreshold)

	// Both factors still classified for display.
	total := 0
	for _, group := range got.Categories {
		total += len(group.Factors)
	}
	assert.Equal(t, 2, total)
}

func TestAssess_MultipleDefaultsPropagates(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("ActiveProfile", mock.Anything).
		Return(nil, profile.ErrMultipleDefaultProfiles)

	svc := newService(profiles, Options{})
	_, err := svc.Assess(context.Background(), AssessmentRequest{EntityID: "ent-1"})

	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileMultipleDefaults))
}

func TestAssess_ExplicitProfile(t *testing.T) {
	p := screeningProfile()
	p.ID = "prof-explicit"
	profiles := new(mockProfiles)
	profiles.On("Get", mock.Anything, "prof-explicit").Return(p, nil)

	svc := newService(profiles, Options{})
	got, err := svc.Assess(context.Background(), AssessmentRequest{
		EntityID:  "ent-1",
		ProfileID: "prof-explicit",
		FactorIDs: []string{"pep"},
	})
	require.NoError(t, err)

	assert.Equal(t, "prof-explicit", got.ProfileID)
	profiles.AssertNotCalled(t, "ActiveProfile", mock.Anything)
}

// fakeCache records Get/Set/loader calls and can replay a stored assessment.
type fakeCache struct {
	store map[string][]byte
	gets  int
	sets  int
	loads int
	fail  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest any) error {
	c.gets++
	data, ok := c.store[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.sets++
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.store[key]
	return ok, nil
}

func (c *fakeCache) GetOrSet(ctx context.Context, key string, dest any, ttl time.Duration, loader func(ctx context.Context) (any, error)) error {
	if c.fail != nil {
		return c.fail
	}
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}
	c.loads++
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func TestAssess_CachesResult(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("ActiveProfile", mock.Anything).Return(screeningProfile(), nil)

	cache := newFakeCache()
	svc := newService(profiles, Options{Cache: cache})

	req := AssessmentRequest{EntityID: "ent-1", FactorIDs: []string{"pep", "ofac_sdn_sanctioned"}}

	first, err := svc.Assess(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Same factor set in a different order hits the same cache entry.
	req.FactorIDs = []string{"ofac_sdn_sanctioned", "pep"}
	second, err := svc.Assess(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, first.Score, second.Score)

	// The second request is served from the cache without recomputing.
	assert.Equal(t, 1, cache.loads)
}

func TestAssess_CacheFailureComputesDirectly(t *testing.T) {
	profiles := new(mockProfiles)
	profiles.On("ActiveProfile", mock.Anything).Return(screeningProfile(), nil)

	cache := newFakeCache()
	cache.fail = redis.ErrSerializationFailed
	svc := newService(profiles, Options{Cache: cache})

	got, err := svc.Assess(context.Background(), AssessmentRequest{
		EntityID:  "ent-1",
		FactorIDs: []string{"ofac_sdn_sanctioned"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, got.Score.TotalScore)
}

func TestCacheKey_OrderInsensitive(t *testing.T) {
	p := screeningProfile()

	a := cacheKey("e", p, []string{"x", "y", "z"})
	b := cacheKey("e", p, []string{"z", "y", "x"})
	c := cacheKey("e", p, []string{"x", "y"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "assessment:e:none:", cacheKey("e", nil, nil)[:18])
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"a", "b", "a", "b"}))
	assert.Empty(t, dedupe(nil))
}
