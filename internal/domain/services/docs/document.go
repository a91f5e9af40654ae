package docs

import (
	"context"

	"docshelf/internal/domain/models/docs"
)

// DocumentService handles document business logic on top of the store.
type DocumentService interface {
	// CreateDocument creates a new document, optionally instantiating a
	// page template when the request names one.
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docs.Document, error)

	// GetDocument retrieves a document by ID
	GetDocument(ctx context.Context, id string) (*docs.Document, error)

	// ListProjectDocuments returns the flat collection for one project
	ListProjectDocuments(ctx context.Context, projectID string) ([]docs.Document, error)

	// UpdateDocument applies a partial update to a document
	UpdateDocument(ctx context.Context, id string, patch *docs.DocumentPatch) (*docs.Document, error)

	// DeleteDocument deletes a document and its whole subtree.
	// Returns domain.ErrNotFound when the id was unknown.
	DeleteDocument(ctx context.Context, id string) error

	// DuplicateDocument copies a page document under the same parent with
	// a fresh identity and a copy-marked name. Non-page documents yield
	// domain.ErrUnsupported.
	DuplicateDocument(ctx context.Context, id string) (*docs.Document, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	ProjectID  string         `json:"project_id"`
	ParentID   *string        `json:"parent_id,omitempty"` // nil = root level
	Name       string         `json:"name"`
	FileType   docs.FileType  `json:"file_type"`
	FileSize   int64          `json:"file_size,omitempty"`
	FileURL    *string        `json:"file_url,omitempty"`
	Icon       *string        `json:"icon,omitempty"`
	TemplateID *string        `json:"template_id,omitempty"` // instantiate a page template
	PageData   *docs.PageData `json:"page_data,omitempty"`
}
