package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docs"
	"docshelf/internal/domain/repositories"
	docsRepo "docshelf/internal/domain/repositories/docs"

	"github.com/google/uuid"
)

// collectionKey identifies the document collection in change events. It
// matches the storage key the web client used for the same data.
const collectionKey = "docs-system"

// Store is a DocumentStore backed by a single JSON blob on disk. Every
// mutation rewrites the whole collection in one atomic write. The store
// assumes a single active writer per process; cross-process freshness is
// best-effort via the file watch in watcher.go.
type Store struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex

	// injected for tests
	now   func() time.Time
	newID func() string
}

// New creates a blob-backed store at the given file path. The parent
// directory is created on the first write, not here.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns every stored document. A missing or unreadable blob is not
// an error: the store fails open to an empty collection so a corrupted
// file degrades to an empty workspace instead of a crash.
func (s *Store) List(ctx context.Context) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// ListByProject returns all documents scoped to one project.
func (s *Store) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var scoped []models.Document
	for _, doc := range s.load() {
		if doc.ProjectID == projectID {
			scoped = append(scoped, doc)
		}
	}
	return scoped, nil
}

// Get retrieves a document by ID
func (s *Store) Get(ctx context.Context, id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.load() {
		if doc.ID == id {
			return &doc, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

// Create assigns a fresh id and creation timestamp, appends the document
// to the collection and persists it. UUIDv4 ids stay unique even for
// bursts of creates within the same millisecond.
func (s *Store) Create(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.ID = s.newID()
	doc.CreatedAt = s.now().UTC()

	collection := append(s.load(), *doc)
	if err := s.save(collection); err != nil {
		return err
	}

	return nil
}

// Update shallow-merges the patch onto the stored record. A missing id is
// reported as domain.ErrNotFound, never as a hard failure.
func (s *Store) Update(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := s.load()
	for i := range collection {
		if collection[i].ID != id {
			continue
		}
		patch.Apply(&collection[i])
		if err := s.save(collection); err != nil {
			return nil, err
		}
		updated := collection[i]
		return &updated, nil
	}

	return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

// Delete removes the document and every transitive child. Children are
// collected before filtering so no orphan can survive. Reports whether
// anything was actually removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := s.load()

	doomed := make(map[string]struct{})
	collectSubtree(collection, id, doomed)

	kept := collection[:0:0]
	for _, doc := range collection {
		if _, gone := doomed[doc.ID]; !gone {
			kept = append(kept, doc)
		}
	}

	if len(kept) == len(collection) {
		return false, nil
	}

	if err := s.save(kept); err != nil {
		return false, err
	}
	return true, nil
}

// collectSubtree marks id and every document whose parent chain reaches
// it. The visited check keeps a corrupted parent cycle from recursing
// forever.
func collectSubtree(all []models.Document, id string, into map[string]struct{}) {
	if _, seen := into[id]; seen {
		return
	}
	into[id] = struct{}{}

	for _, doc := range all {
		if doc.ParentID != nil && *doc.ParentID == id {
			collectSubtree(all, doc.ID, into)
		}
	}
}

// ExecTx satisfies the TransactionManager interface. The blob store is
// synchronous and single-writer, so the function simply runs in place;
// atomicity across steps holds because nothing else mutates concurrently.
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// load reads the whole collection. Callers must hold s.mu.
func (s *Store) load() []models.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("blob unreadable, treating as empty", "path", s.path, "error", err)
		}
		return nil
	}

	var collection []models.Document
	if err := json.Unmarshal(data, &collection); err != nil {
		s.logger.Warn("blob corrupt, treating as empty", "path", s.path, "error", err)
		return nil
	}
	return collection
}

// save persists the whole collection as one blob via temp-file rename.
// Write failures propagate: swallowing them would silently lose data.
// Callers must hold s.mu.
func (s *Store) save(collection []models.Document) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %v", domain.ErrPersistence, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: create store directory: %v", domain.ErrPersistence, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: write blob: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replace blob: %v", domain.ErrPersistence, err)
	}
	return nil
}

var (
	_ docsRepo.DocumentStore          = (*Store)(nil)
	_ repositories.TransactionManager = (*Store)(nil)
)
