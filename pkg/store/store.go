// Package store persists family snapshots outside the layout engine.
//
// The engine only ever receives a snapshot; where that snapshot lives is
// the concern of this package. Three backends implement [Store]:
//   - [FileStore]: one JSON file per family, used by the CLI
//   - [MemoryStore]: process-local, used by tests and ephemeral servers
//   - [MongoStore]: a MongoDB collection, used by the HTTP API
//
// Family ids are validated with [errors.ValidateFamilyID] before any
// backend sees them. A missing family yields an error carrying the
// FAMILY_NOT_FOUND code that also matches [ErrNotFound] with errors.Is.
//
//	st, err := store.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	f, err := st.Load(ctx, "smiths")
//
// [errors.ValidateFamilyID]: github.com/matzehuels/familytower/pkg/errors.ValidateFamilyID
package store

import (
	"context"
	"errors"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

// ErrNotFound is returned when a family does not exist.
var ErrNotFound = errors.New("not found")

// Store is the interface for family snapshot backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the snapshot stored under id.
	Load(ctx context.Context, id string) (family.Family, error)

	// Save stores f under id, replacing any previous snapshot.
	Save(ctx context.Context, id string, f family.Family) error

	// Delete removes the snapshot. Deleting a missing family is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored family id in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return ferrors.Wrap(ferrors.ErrCodeFamilyNotFound, ErrNotFound, "family %s", id)
}
