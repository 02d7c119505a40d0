// Package metadata persists small key/value records in the local client
// database: the session record and the salt used to seal it.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/profilespaces/internal/dbx"
)

// Repository is a key/value store over the metadata table. Get returns
// common.ErrNotFound for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// WithDB returns a copy bound to db, typically a transaction.
	WithDB(db dbx.DBTX) Repository
}
