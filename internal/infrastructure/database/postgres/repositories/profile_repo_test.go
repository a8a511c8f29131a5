package repositories

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenrisk/entity-screening/internal/domain/profile"
	"github.com/lumenrisk/entity-screening/pkg/errors"
)

// fakeDB scripts Exec/QueryRow results for one repository call at a time.
type fakeDB struct {
	execTag  pgconn.CommandTag
	execErr  error
	rowErr   error
	beginErr error
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, f.rowErr
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{err: f.rowErr}
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return f.execTag, f.execErr
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, f.beginErr
}

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	return r.err
}

func TestProfileRepoSave_MapsUniqueViolation(t *testing.T) {
	db := &fakeDB{execErr: &pgconn.PgError{Code: "23505"}}
	repo := NewProfileRepo(db, nil)

	err := repo.Save(context.Background(), profile.New("dup"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileAlreadyExists))
}

func TestProfileRepoSave_WrapsOtherErrors(t *testing.T) {
	db := &fakeDB{execErr: stderrors.New("connection reset")}
	repo := NewProfileRepo(db, nil)

	err := repo.Save(context.Background(), profile.New("p"))

	assert.True(t, errors.IsCode(err, errors.ErrCodeDatabaseError))
}

func TestProfileRepoUpdate_NotFoundOnZeroRows(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewProfileRepo(db, nil)

	err := repo.Update(context.Background(), profile.New("missing"))

	assert.True(t, errors.IsNotFound(err))
}

func TestProfileRepoDelete_NotFoundOnZeroRows(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")}
	repo := NewProfileRepo(db, nil)

	err := repo.Delete(context.Background(), "missing")

	assert.True(t, errors.IsNotFound(err))
}

func TestProfileRepoFindByID_MapsNoRows(t *testing.T) {
	db := &fakeDB{rowErr: pgx.ErrNoRows}
	repo := NewProfileRepo(db, nil)

	_, err := repo.FindByID(context.Background(), "missing")

	assert.True(t, errors.IsNotFound(err))
}

func TestProfileRepoSetDefault_BeginFailure(t *testing.T) {
	db := &fakeDB{beginErr: stderrors.New("pool exhausted")}
	repo := NewProfileRepo(db, nil)

	err := repo.SetDefault(context.Background(), "p1")

	assert.True(t, errors.IsCode(err, errors.ErrCodeDatabaseError))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(stderrors.New("plain")))
}
