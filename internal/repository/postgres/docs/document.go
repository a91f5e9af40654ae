package docs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docs"
	docsRepo "docshelf/internal/domain/repositories/docs"
	"docshelf/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocumentStore implements the DocumentStore interface for hosted
// deployments.
//
// Expected schema (page_data is JSONB, id defaults to gen_random_uuid(),
// created_at defaults to now()):
//
//	CREATE TABLE <prefix>documents (
//	    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    project_id  TEXT NOT NULL,
//	    parent_id   UUID,
//	    name        TEXT NOT NULL,
//	    file_type   TEXT NOT NULL,
//	    file_size   BIGINT NOT NULL DEFAULT 0,
//	    file_url    TEXT,
//	    icon        TEXT,
//	    template_id TEXT,
//	    page_data   JSONB,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
// parent_id deliberately carries no foreign key: the dangling-parent
// policy (degrade to root) is part of the store contract, and cascade
// deletion is done explicitly so both backends behave identically.
type PostgresDocumentStore struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentStore creates a new Postgres document store
func NewDocumentStore(config *postgres.RepositoryConfig) *PostgresDocumentStore {
	return &PostgresDocumentStore{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = "id, project_id, parent_id, name, file_type, file_size, file_url, icon, template_id, page_data, created_at"

// List returns every stored document
func (r *PostgresDocumentStore) List(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, documentColumns, r.tables.Documents)
	return r.queryDocuments(ctx, query)
}

// ListByProject returns all documents scoped to one project
func (r *PostgresDocumentStore) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = $1`, documentColumns, r.tables.Documents)
	return r.queryDocuments(ctx, query, projectID)
}

func (r *PostgresDocumentStore) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.ProjectID,
			&doc.ParentID,
			&doc.Name,
			&doc.FileType,
			&doc.FileSize,
			&doc.FileURL,
			&doc.Icon,
			&doc.TemplateID,
			&doc.PageData,
			&doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

// Get retrieves a document by ID
func (r *PostgresDocumentStore) Get(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	var doc models.Document
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.ParentID,
		&doc.Name,
		&doc.FileType,
		&doc.FileSize,
		&doc.FileURL,
		&doc.Icon,
		&doc.TemplateID,
		&doc.PageData,
		&doc.CreatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// Create inserts a new document. The database assigns the id; id and
// created_at are written back onto the passed record.
func (r *PostgresDocumentStore) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, parent_id, name, file_type, file_size, file_url, icon, template_id, page_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.ProjectID,
		doc.ParentID,
		doc.Name,
		doc.FileType,
		doc.FileSize,
		doc.FileURL,
		doc.Icon,
		doc.TemplateID,
		doc.PageData,
		time.Now(),
	).Scan(&doc.ID, &doc.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: create document: %v", domain.ErrPersistence, err)
	}

	r.notify(ctx)
	return nil
}

// Update shallow-merges the patch onto the stored record and persists it
func (r *PostgresDocumentStore) Update(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error) {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(doc)

	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $2, name = $3, icon = $4, page_data = $5
		WHERE id = $1
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query,
		doc.ID,
		doc.ParentID,
		doc.Name,
		doc.Icon,
		doc.PageData,
	); err != nil {
		return nil, fmt.Errorf("%w: update document: %v", domain.ErrPersistence, err)
	}

	r.notify(ctx)
	return doc, nil
}

// Delete removes the document and its whole subtree in one statement.
// UNION (not UNION ALL) in the recursive term makes the traversal stop on
// already-visited rows, so a corrupted parent cycle cannot loop.
func (r *PostgresDocumentStore) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %[1]s WHERE id = $1
			UNION
			SELECT d.id FROM %[1]s d
			JOIN subtree s ON d.parent_id = s.id
		)
		DELETE FROM %[1]s WHERE id IN (SELECT id FROM subtree)
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("%w: delete document: %v", domain.ErrPersistence, err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	r.notify(ctx)
	return true, nil
}

// notify signals other connections that the collection changed. Delivery
// is best-effort; a failed notify is logged, not propagated, because the
// mutation itself already committed.
func (r *PostgresDocumentStore) notify(ctx context.Context) {
	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, "SELECT pg_notify($1, $2)", postgres.DocumentsChannel, "documents"); err != nil {
		r.logger.Warn("change notify failed", "error", err)
	}
}

var _ docsRepo.DocumentStore = (*PostgresDocumentStore)(nil)
