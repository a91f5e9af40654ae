package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docs"
	"docshelf/internal/domain/repositories"
	docsSvc "docshelf/internal/domain/services/docs"
	"docshelf/internal/templates"
)

// memStore is an in-memory DocumentStore for service tests. It doubles
// as the TransactionManager, running the callback in place.
type memStore struct {
	docs   []models.Document
	nextID int
}

func (m *memStore) List(ctx context.Context) ([]models.Document, error) {
	return m.docs, nil
}

func (m *memStore) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	var scoped []models.Document
	for _, d := range m.docs {
		if d.ProjectID == projectID {
			scoped = append(scoped, d)
		}
	}
	return scoped, nil
}

func (m *memStore) Get(ctx context.Context, id string) (*models.Document, error) {
	for _, d := range m.docs {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

func (m *memStore) Create(ctx context.Context, doc *models.Document) error {
	m.nextID++
	doc.ID = fmt.Sprintf("doc-%d", m.nextID)
	doc.CreatedAt = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC).Add(time.Duration(m.nextID) * time.Minute)
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *memStore) Update(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			patch.Apply(&m.docs[i])
			updated := m.docs[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
}

func (m *memStore) Delete(ctx context.Context, id string) (bool, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func newTestService(t *testing.T) (docsSvc.DocumentService, *memStore) {
	t.Helper()

	catalog, err := templates.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	store := &memStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDocumentService(store, store, catalog, logger), store
}

func TestCreateDocument_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  docsSvc.CreateDocumentRequest
	}{
		{
			name: "missing project id",
			req:  docsSvc.CreateDocumentRequest{Name: "notes", FileType: models.FileTypePage},
		},
		{
			name: "missing name",
			req:  docsSvc.CreateDocumentRequest{ProjectID: "p1", FileType: models.FileTypePage},
		},
		{
			name: "name too long",
			req: docsSvc.CreateDocumentRequest{
				ProjectID: "p1",
				Name:      strings.Repeat("x", 256),
				FileType:  models.FileTypePage,
			},
		},
		{
			name: "unknown file type",
			req:  docsSvc.CreateDocumentRequest{ProjectID: "p1", Name: "notes", FileType: "video"},
		},
		{
			name: "negative file size",
			req: docsSvc.CreateDocumentRequest{
				ProjectID: "p1",
				Name:      "report.pdf",
				FileType:  models.FileTypePDF,
				FileSize:  -1,
			},
		},
		{
			name: "page data on a file upload",
			req: docsSvc.CreateDocumentRequest{
				ProjectID: "p1",
				Name:      "report.pdf",
				FileType:  models.FileTypePDF,
				PageData:  &models.PageData{Title: "report"},
			},
		},
		{
			name: "template on a file upload",
			req: docsSvc.CreateDocumentRequest{
				ProjectID:  "p1",
				Name:       "report.pdf",
				FileType:   models.FileTypePDF,
				TemplateID: ptr("todo-list"),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateDocument(context.Background(), &tc.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateDocument_PageGetsEmptyContent(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateDocument(context.Background(), &docsSvc.CreateDocumentRequest{
		ProjectID: "p1",
		Name:      "Blank page",
		FileType:  models.FileTypePage,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if created.ID == "" {
		t.Error("created document has no id")
	}
	if created.PageData == nil {
		t.Fatal("page created without page data")
	}
	if created.PageData.Title != "Blank page" {
		t.Errorf("page title = %q, want %q", created.PageData.Title, "Blank page")
	}
	if len(created.PageData.Elements) != 0 {
		t.Errorf("empty page has %d elements", len(created.PageData.Elements))
	}
}

func TestCreateDocument_FromTemplate(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateDocument(context.Background(), &docsSvc.CreateDocumentRequest{
		ProjectID:  "p1",
		Name:       "Sprint 12 standup",
		FileType:   models.FileTypePage,
		TemplateID: ptr("meeting-notes"),
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if created.PageData == nil {
		t.Fatal("template instantiation produced no page data")
	}
	if created.PageData.Title != "Sprint 12 standup" {
		t.Errorf("page title = %q, want the document name", created.PageData.Title)
	}
	if len(created.PageData.Elements) == 0 {
		t.Error("template instantiation produced no elements")
	}
	for i, el := range created.PageData.Elements {
		if el.ID == "" {
			t.Errorf("element %d has no id", i)
		}
	}
}

func TestCreateDocument_UnknownTemplate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateDocument(context.Background(), &docsSvc.CreateDocumentRequest{
		ProjectID:  "p1",
		Name:       "notes",
		FileType:   models.FileTypePage,
		TemplateID: ptr("no-such-template"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestUpdateDocument_RejectsOversizedName(t *testing.T) {
	svc, store := newTestService(t)
	store.docs = append(store.docs, models.Document{ID: "doc-1", ProjectID: "p1", Name: "old", FileType: models.FileTypePage})

	longName := strings.Repeat("x", 256)
	_, err := svc.UpdateDocument(context.Background(), "doc-1", &models.DocumentPatch{Name: &longName})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestDeleteDocument_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteDocument(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDuplicateDocument_CopiesPage(t *testing.T) {
	svc, store := newTestService(t)

	original, err := svc.CreateDocument(context.Background(), &docsSvc.CreateDocumentRequest{
		ProjectID: "p1",
		ParentID:  ptr("folder-1"),
		Name:      "Design notes",
		FileType:  models.FileTypePage,
		PageData: &models.PageData{
			Title:    "Design notes",
			Elements: []models.PageElement{{ID: "el-1", Type: models.ElementText, Content: []byte(`"draft"`)}},
		},
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	duplicate, err := svc.DuplicateDocument(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("DuplicateDocument: %v", err)
	}

	if duplicate.ID == original.ID {
		t.Error("duplicate shares the original's id")
	}
	if duplicate.Name != "Design notes (Copy)" {
		t.Errorf("duplicate name = %q", duplicate.Name)
	}
	if duplicate.ParentID == nil || *duplicate.ParentID != "folder-1" {
		t.Error("duplicate lost the original's parent")
	}
	if duplicate.PageData == nil || len(duplicate.PageData.Elements) != 1 {
		t.Fatal("duplicate lost the page content")
	}

	// The copy must not alias the original's content.
	duplicate.PageData.Elements[0].Content = []byte(`"mutated"`)
	stored, err := store.Get(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("Get original: %v", err)
	}
	if string(stored.PageData.Elements[0].Content) != `"draft"` {
		t.Error("mutating the duplicate changed the original's content")
	}
}

func TestDuplicateDocument_RejectsNonPage(t *testing.T) {
	svc, _ := newTestService(t)

	pdf, err := svc.CreateDocument(context.Background(), &docsSvc.CreateDocumentRequest{
		ProjectID: "p1",
		Name:      "report.pdf",
		FileType:  models.FileTypePDF,
		FileSize:  2048,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	_, err = svc.DuplicateDocument(context.Background(), pdf.ID)
	if !errors.Is(err, domain.ErrUnsupported) {
		t.Fatalf("got %v, want ErrUnsupported", err)
	}
}

func TestDuplicateDocument_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.DuplicateDocument(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
