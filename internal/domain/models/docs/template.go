package docs

// TemplateCategory groups page templates in the picker UI.
type TemplateCategory string

const (
	TemplateCategoryWork      TemplateCategory = "work"
	TemplateCategoryPersonal  TemplateCategory = "personal"
	TemplateCategoryEducation TemplateCategory = "education"
	TemplateCategoryCustom    TemplateCategory = "custom"
)

// PageTemplate is a reusable page skeleton. Instantiating a template
// deep-copies its elements with fresh ids so documents never share
// element identity with the catalog.
type PageTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    TemplateCategory `json:"category"`
	Icon        string           `json:"icon"`
	Elements    []PageElement    `json:"elements"`
}
