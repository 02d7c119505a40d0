package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/common"
)

func sampleRecord() SessionRecord {
	exp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return SessionRecord{
		Token:     "tok",
		User:      models.User{ID: 1, Username: "mika", Theme: models.ThemeDark, Interests: []string{"go"}},
		ExpiresAt: &exp,
	}
}

func TestSessionStore_PlainRoundTrip(t *testing.T) {
	db := setupDB(t)
	s := NewSessionStore(db, "")
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, s.Save(ctx, sampleRecord()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "mika", got.User.Username)
	assert.True(t, got.ExpiresAt.Equal(*sampleRecord().ExpiresAt))

	require.NoError(t, s.Clear(ctx))
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSessionStore_SealedRoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	s := NewSessionStore(db, "hunter2")
	require.NoError(t, s.Save(ctx, sampleRecord()))

	raw, err := NewSQLiteRepository(db).Get(ctx, common.SessionRecordKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "mika")

	salt, err := NewSQLiteRepository(db).Get(ctx, common.SessionSaltKey)
	require.NoError(t, err)
	assert.Len(t, salt, 16)

	// a fresh store with the same secret reuses the stored salt
	got, err := NewSessionStore(db, "hunter2").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mika", got.User.Username)
}

func TestSessionStore_WrongSecretIsCorrupt(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewSessionStore(db, "right").Save(ctx, sampleRecord()))

	_, err := NewSessionStore(db, "wrong").Load(ctx)
	assert.ErrorIs(t, err, common.ErrCorruptRecord)
}

func TestSessionStore_GarbageIsCorrupt(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewSQLiteRepository(db).Set(ctx, common.SessionRecordKey, []byte("{not json")))
	_, err := NewSessionStore(db, "").Load(ctx)
	assert.ErrorIs(t, err, common.ErrCorruptRecord)

	require.NoError(t, NewSQLiteRepository(db).Set(ctx, common.SessionRecordKey, []byte(`{"token":""}`)))
	_, err = NewSessionStore(db, "").Load(ctx)
	assert.ErrorIs(t, err, common.ErrCorruptRecord)
}

func TestSessionStore_SaltTxFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("locked")
	mock.ExpectBegin().WillReturnError(boom)

	s := NewSessionStore(db, "secret")
	err = s.Save(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load session salt")
	require.NoError(t, mock.ExpectationsWereMet())
}
