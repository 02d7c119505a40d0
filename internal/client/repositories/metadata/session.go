package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/profilespaces/internal/client/models"
	"github.com/dmitrijs2005/profilespaces/internal/common"
	"github.com/dmitrijs2005/profilespaces/internal/cryptox"
	"github.com/dmitrijs2005/profilespaces/internal/dbx"
)

// SessionRecord is the durable form of an authenticated session. Token and
// user are always written and removed together.
type SessionRecord struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

// SessionStore keeps the single session record under common.SessionRecordKey.
// With a non-empty secret the record is sealed with a key derived from the
// secret and a per-install salt.
type SessionStore struct {
	repo   Repository
	db     dbx.TxBeginner
	secret []byte

	mu  sync.Mutex
	key []byte
}

// NewSessionStore builds a store over db. An empty secret stores plain JSON.
func NewSessionStore(db interface {
	dbx.DBTX
	dbx.TxBeginner
}, secret string) *SessionStore {
	s := &SessionStore{repo: NewSQLiteRepository(db), db: db}
	if secret != "" {
		s.secret = []byte(secret)
	}
	return s
}

// Load returns the stored record. It returns common.ErrNotFound when none is
// stored and common.ErrCorruptRecord when the stored bytes cannot be read.
func (s *SessionStore) Load(ctx context.Context) (*SessionRecord, error) {
	raw, err := s.repo.Get(ctx, common.SessionRecordKey)
	if err != nil {
		return nil, err
	}

	var rec SessionRecord
	if s.secret == nil {
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCorruptRecord, err)
		}
	} else {
		key, err := s.sealKey(ctx)
		if err != nil {
			return nil, err
		}
		if err := cryptox.OpenJSON(raw, key, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCorruptRecord, err)
		}
	}

	if rec.Token == "" {
		return nil, fmt.Errorf("%w: empty token", common.ErrCorruptRecord)
	}
	return &rec, nil
}

// Save writes rec, replacing any previous record.
func (s *SessionStore) Save(ctx context.Context, rec SessionRecord) error {
	var (
		raw []byte
		err error
	)
	if s.secret == nil {
		raw, err = json.Marshal(rec)
	} else {
		var key []byte
		key, err = s.sealKey(ctx)
		if err != nil {
			return err
		}
		raw, err = cryptox.SealJSON(rec, key)
	}
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	return s.repo.Set(ctx, common.SessionRecordKey, raw)
}

// Clear removes the record. Clearing an empty store is not an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.SessionRecordKey)
}

// sealKey derives the sealing key, creating the salt on first use.
func (s *SessionStore) sealKey(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return s.key, nil
	}

	var salt []byte
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithDB(tx)

		got, err := repo.Get(ctx, common.SessionSaltKey)
		if err == nil {
			salt = got
			return nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		salt, err = cryptox.NewSalt()
		if err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionSaltKey, salt)
	})
	if err != nil {
		return nil, fmt.Errorf("load session salt: %w", err)
	}

	s.key = cryptox.DeriveKey(s.secret, salt)
	return s.key, nil
}
