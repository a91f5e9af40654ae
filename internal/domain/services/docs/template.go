package docs

import "docshelf/internal/domain/models/docs"

// TemplateCatalog provides the built-in page templates.
type TemplateCatalog interface {
	// ListTemplates returns every template in the catalog
	ListTemplates() []docs.PageTemplate

	// GetTemplate returns the template with the given id, or
	// domain.ErrNotFound
	GetTemplate(id string) (*docs.PageTemplate, error)

	// Instantiate deep-copies a template's elements with fresh element ids
	Instantiate(id string) (*docs.PageData, error)
}
