package docs

import (
	"encoding/json"
	"time"
)

// FileType discriminates rich-text pages from uploaded file placeholders.
type FileType string

const (
	FileTypePage  FileType = "page"
	FileTypePDF   FileType = "pdf"
	FileTypeWord  FileType = "word"
	FileTypeExcel FileType = "excel"
	FileTypeImage FileType = "image"
	FileTypeOther FileType = "other"
)

// ValidFileTypes lists every accepted file_type value.
var ValidFileTypes = []FileType{
	FileTypePage, FileTypePDF, FileTypeWord, FileTypeExcel, FileTypeImage, FileTypeOther,
}

// Document is a single record in the flat store: either a rich-text page
// or an uploaded-file placeholder. ParentID defines the tree edge; nil
// means root level.
type Document struct {
	ID         string    `json:"id" db:"id"`
	ProjectID  string    `json:"project_id" db:"project_id"`
	ParentID   *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name       string    `json:"name" db:"name"`
	FileType   FileType  `json:"file_type" db:"file_type"`
	FileSize   int64     `json:"file_size" db:"file_size"` // bytes, 0 for pages
	FileURL    *string   `json:"file_url,omitempty" db:"file_url"`
	Icon       *string   `json:"icon" db:"icon"`
	TemplateID *string   `json:"template_id,omitempty" db:"template_id"`
	PageData   *PageData `json:"page_data,omitempty" db:"page_data"` // only for pages
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// IsPage reports whether the document is a rich-text page.
func (d *Document) IsPage() bool {
	return d.FileType == FileTypePage
}

// PageData holds the editable content of a page document.
type PageData struct {
	Title     string        `json:"title"`
	Elements  []PageElement `json:"elements"`
	IconEmoji string        `json:"icon_emoji,omitempty"`
	CoverImg  string        `json:"cover_img,omitempty"`
}

// ElementType enumerates the block types a page can contain.
type ElementType string

const (
	ElementH1        ElementType = "h1"
	ElementH2        ElementType = "h2"
	ElementText      ElementType = "text"
	ElementList      ElementType = "list"
	ElementChecklist ElementType = "checklist"
	ElementTable     ElementType = "table"
)

// PageElement is one ordered content block inside a page. Content is kept
// as raw JSON because its schema depends on Type (string for headings and
// text, string array for lists, ChecklistItem array for checklists,
// TableData for tables). The store never interprets it.
type PageElement struct {
	ID      string          `json:"id"`
	Type    ElementType     `json:"type"`
	Content json.RawMessage `json:"content"`
}

// ChecklistItem is one entry of a checklist element.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// TableData is the content of a table element.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}
