package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docs"
	docsSvc "docshelf/internal/domain/services/docs"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFiles embed.FS

// Registry holds the built-in page templates, loaded once from the
// embedded YAML catalog.
type Registry struct {
	templates []models.PageTemplate
	byID      map[string]*models.PageTemplate
	mu        sync.RWMutex
}

// catalogFile is the YAML schema of one catalog file
type catalogFile struct {
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Category    string         `yaml:"category"`
	Icon        string         `yaml:"icon"`
	Elements    []elementEntry `yaml:"elements"`
}

// elementEntry is one content block in the catalog. Exactly one of the
// content fields applies, depending on Type.
type elementEntry struct {
	Type    string     `yaml:"type"`
	Text    string     `yaml:"text,omitempty"`    // h1, h2, text
	Items   []string   `yaml:"items,omitempty"`   // list, checklist
	Headers []string   `yaml:"headers,omitempty"` // table
	Rows    [][]string `yaml:"rows,omitempty"`    // table
}

// NewRegistry loads the embedded catalog
func NewRegistry() (*Registry, error) {
	r := &Registry{byID: make(map[string]*models.PageTemplate)}

	if err := r.loadCatalogFile("pages"); err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	return r, nil
}

// loadCatalogFile loads one embedded YAML catalog file
func (r *Registry) loadCatalogFile(name string) error {
	data, err := catalogFiles.ReadFile(fmt.Sprintf("catalog/%s.yaml", name))
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", name, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal catalog %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range file.Templates {
		tmpl, err := entry.toTemplate()
		if err != nil {
			return fmt.Errorf("template %q: %w", entry.ID, err)
		}
		r.templates = append(r.templates, *tmpl)
		r.byID[tmpl.ID] = &r.templates[len(r.templates)-1]
	}

	return nil
}

// toTemplate converts a catalog entry into the domain model, encoding
// each element's typed content as the raw JSON the page editor consumes.
func (e *templateEntry) toTemplate() (*models.PageTemplate, error) {
	elements := make([]models.PageElement, 0, len(e.Elements))
	for _, el := range e.Elements {
		content, err := el.contentJSON()
		if err != nil {
			return nil, err
		}
		elements = append(elements, models.PageElement{
			Type:    models.ElementType(el.Type),
			Content: content,
		})
	}

	return &models.PageTemplate{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Category:    models.TemplateCategory(e.Category),
		Icon:        e.Icon,
		Elements:    elements,
	}, nil
}

func (e *elementEntry) contentJSON() (json.RawMessage, error) {
	switch models.ElementType(e.Type) {
	case models.ElementH1, models.ElementH2, models.ElementText:
		return json.Marshal(e.Text)
	case models.ElementList:
		return json.Marshal(e.Items)
	case models.ElementChecklist:
		items := make([]models.ChecklistItem, 0, len(e.Items))
		for _, text := range e.Items {
			items = append(items, models.ChecklistItem{Text: text})
		}
		return json.Marshal(items)
	case models.ElementTable:
		return json.Marshal(models.TableData{Headers: e.Headers, Rows: e.Rows})
	default:
		return nil, fmt.Errorf("unknown element type %q", e.Type)
	}
}

// ListTemplates returns every template in the catalog
func (r *Registry) ListTemplates() []models.PageTemplate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PageTemplate, len(r.templates))
	copy(out, r.templates)
	return out
}

// GetTemplate returns the template with the given id
func (r *Registry) GetTemplate(id string) (*models.PageTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	return tmpl, nil
}

// Instantiate deep-copies a template's elements with fresh ids so a new
// page never shares element identity with the catalog or with other
// pages created from the same template.
func (r *Registry) Instantiate(id string) (*models.PageData, error) {
	tmpl, err := r.GetTemplate(id)
	if err != nil {
		return nil, err
	}

	elements := make([]models.PageElement, 0, len(tmpl.Elements))
	for _, el := range tmpl.Elements {
		content, err := freshContentIDs(el)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", id, err)
		}
		elements = append(elements, models.PageElement{
			ID:      uuid.NewString(),
			Type:    el.Type,
			Content: content,
		})
	}

	return &models.PageData{
		Title:     tmpl.Name,
		Elements:  elements,
		IconEmoji: tmpl.Icon,
	}, nil
}

// freshContentIDs re-ids nested content where it carries identity
// (checklist items); all other content is copied as-is.
func freshContentIDs(el models.PageElement) (json.RawMessage, error) {
	if el.Type != models.ElementChecklist {
		return append(json.RawMessage(nil), el.Content...), nil
	}

	var items []models.ChecklistItem
	if err := json.Unmarshal(el.Content, &items); err != nil {
		return nil, fmt.Errorf("decode checklist content: %w", err)
	}
	for i := range items {
		items[i].ID = uuid.NewString()
	}
	return json.Marshal(items)
}

var _ docsSvc.TemplateCatalog = (*Registry)(nil)
