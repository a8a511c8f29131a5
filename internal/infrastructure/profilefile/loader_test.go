package profilefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenrisk/entity-screening/pkg/errors"
)

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const baselineProfile = `
name: Baseline Screening
description: Default screening profile
is_default: true
enabled_factors:
  - ofac_sdn_sanctioned
  - pep
  - pep
risk_scoring_enabled: true
risk_threshold: 5
risk_scores:
  ofac_sdn_sanctioned: 10
  pep: 3
categories:
  sanctions:
    name: Sanctions
    description: Sanctions list hits
    enabled: true
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "baseline.yaml", baselineProfile)

	p, err := NewLoader(nil).LoadFile(path)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Baseline Screening", p.Name)
	assert.True(t, p.IsDefault)
	assert.True(t, p.RiskScoringEnabled)
	assert.Equal(t, 5, p.RiskThreshold)
	assert.Equal(t, []string{"ofac_sdn_sanctioned", "pep"}, p.EnabledFactors)
	assert.Equal(t, 10, p.RiskScores["ofac_sdn_sanctioned"])

	require.Contains(t, p.Categories, "sanctions")
	assert.Equal(t, "Sanctions", p.Categories["sanctions"].Name)
	assert.True(t, p.Categories["sanctions"].Enabled)
}

func TestLoadFile_PermissiveCoercion(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "sloppy.yaml", `
name: Sloppy
risk_scoring_enabled: true
risk_threshold: -4
risk_scores:
  pep: not_a_number
  ofac_sdn_sanctioned: 10
`)

	p, err := NewLoader(nil).LoadFile(path)
	require.NoError(t, err)

	// Malformed score degrades to 0, negative threshold to the minimum.
	assert.Equal(t, 0, p.RiskScores["pep"])
	assert.Equal(t, 10, p.RiskScores["ofac_sdn_sanctioned"])
	assert.Equal(t, 1, p.RiskThreshold)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := NewLoader(nil).LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileParseFailed))
}

func TestLoadFile_MissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "anon.yaml", "risk_threshold: 3\n")

	_, err := NewLoader(nil).LoadFile(path)
	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileInvalid))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "a.yaml", "name: A\nis_default: true\n")
	writeProfile(t, dir, "b.yml", "name: B\n")
	writeProfile(t, dir, "ignored.txt", "not a profile")

	profiles, err := NewLoader(nil).LoadDir(dir)
	require.NoError(t, err)

	require.Len(t, profiles, 2)
	assert.Equal(t, "A", profiles[0].Name)
	assert.Equal(t, "B", profiles[1].Name)
}

func TestLoadDir_MultipleDefaultsRejected(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "a.yaml", "name: A\nis_default: true\n")
	writeProfile(t, dir, "b.yaml", "name: B\nis_default: true\n")

	_, err := NewLoader(nil).LoadDir(dir)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileMultipleDefaults))
}
