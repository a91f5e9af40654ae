package docs

import (
	"context"

	"docshelf/internal/domain/models/docs"
)

// DocumentStore defines data access operations for the flat document
// collection. The whole collection is the single shared resource; nothing
// outside a store implementation writes to the underlying persistence.
type DocumentStore interface {
	// List returns every stored document. A missing or corrupt backing
	// blob yields an empty slice, never an error.
	List(ctx context.Context) ([]docs.Document, error)

	// ListByProject returns all documents scoped to one project.
	ListByProject(ctx context.Context, projectID string) ([]docs.Document, error)

	// Get retrieves a document by ID. Returns domain.ErrNotFound for a
	// missing id.
	Get(ctx context.Context, id string) (*docs.Document, error)

	// Create assigns a fresh id and creation timestamp, persists the
	// document and fills both fields on the passed record.
	Create(ctx context.Context, doc *docs.Document) error

	// Update shallow-merges the patch onto the stored record and returns
	// the updated document. Returns domain.ErrNotFound for a missing id.
	Update(ctx context.Context, id string, patch *docs.DocumentPatch) (*docs.Document, error)

	// Delete removes the document and, recursively, every document whose
	// parent chain reaches it. Reports whether anything was removed so
	// callers can detect a no-op delete of an unknown id.
	Delete(ctx context.Context, id string) (bool, error)
}

// Change signals that the underlying collection was modified outside the
// subscriber's control (another process, another connection).
type Change struct {
	// Key identifies the modified collection.
	Key string
}

// ChangeNotifier is the "this shared resource changed externally" port.
// The local store backs it with a file watch, the Postgres store with
// LISTEN/NOTIFY. Events carry no ordering or dedup guarantees; consumers
// must rebuild idempotently.
type ChangeNotifier interface {
	// Subscribe returns a channel of change events. The channel is closed
	// when ctx is cancelled.
	Subscribe(ctx context.Context) (<-chan Change, error)
}
