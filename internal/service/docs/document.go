package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"docshelf/internal/config"
	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docs"
	"docshelf/internal/domain/repositories"
	docsRepo "docshelf/internal/domain/repositories/docs"
	docsSvc "docshelf/internal/domain/services/docs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// copyNameSuffix marks duplicated documents in the UI list
const copyNameSuffix = " (Copy)"

// documentService implements the DocumentService interface
type documentService struct {
	store     docsRepo.DocumentStore
	txManager repositories.TransactionManager
	catalog   docsSvc.TemplateCatalog
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	store docsRepo.DocumentStore,
	txManager repositories.TransactionManager,
	catalog docsSvc.TemplateCatalog,
	logger *slog.Logger,
) docsSvc.DocumentService {
	return &documentService{
		store:     store,
		txManager: txManager,
		catalog:   catalog,
		logger:    logger,
	}
}

// CreateDocument creates a new document. Pages get their content from, in
// priority order: an instantiated template (template_id), the supplied
// page_data, or an empty page titled after the document.
func (s *documentService) CreateDocument(ctx context.Context, req *docsSvc.CreateDocumentRequest) (*models.Document, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	pageData := req.PageData
	if req.TemplateID != nil {
		instantiated, err := s.catalog.Instantiate(*req.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown template %q", domain.ErrValidation, *req.TemplateID)
		}
		instantiated.Title = req.Name
		pageData = instantiated
	}
	if req.FileType == models.FileTypePage && pageData == nil {
		pageData = &models.PageData{Title: req.Name, Elements: []models.PageElement{}}
	}

	doc := &models.Document{
		ProjectID:  req.ProjectID,
		ParentID:   req.ParentID,
		Name:       req.Name,
		FileType:   req.FileType,
		FileSize:   req.FileSize,
		FileURL:    req.FileURL,
		Icon:       req.Icon,
		TemplateID: req.TemplateID,
		PageData:   pageData,
	}

	if err := s.store.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"name", doc.Name,
		"project_id", doc.ProjectID,
		"file_type", doc.FileType,
		"from_template", req.TemplateID != nil,
	)

	return doc, nil
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.store.Get(ctx, id)
}

// ListProjectDocuments returns the flat collection for one project
func (s *documentService) ListProjectDocuments(ctx context.Context, projectID string) ([]models.Document, error) {
	return s.store.ListByProject(ctx, projectID)
}

// UpdateDocument applies a partial update to a document
func (s *documentService) UpdateDocument(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error) {
	if patch.Name != nil {
		if err := validation.Validate(*patch.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
	}

	doc, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"name", doc.Name,
		"project_id", doc.ProjectID,
	)

	return doc, nil
}

// DeleteDocument deletes a document and its whole subtree
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

// DuplicateDocument copies a page document under the same parent. Only
// pages can be duplicated: uploaded files share remote storage objects
// the store does not own, so they yield domain.ErrUnsupported.
func (s *documentService) DuplicateDocument(ctx context.Context, id string) (*models.Document, error) {
	var duplicate *models.Document

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		original, err := s.store.Get(txCtx, id)
		if err != nil {
			return err
		}
		if !original.IsPage() {
			return fmt.Errorf("duplicate %s document: %w", original.FileType, domain.ErrUnsupported)
		}

		pageData, err := clonePageData(original.PageData)
		if err != nil {
			return fmt.Errorf("clone page data: %w", err)
		}

		duplicate = &models.Document{
			ProjectID:  original.ProjectID,
			ParentID:   original.ParentID,
			Name:       original.Name + copyNameSuffix,
			FileType:   original.FileType,
			FileSize:   original.FileSize,
			Icon:       original.Icon,
			TemplateID: original.TemplateID,
			PageData:   pageData,
		}
		return s.store.Create(txCtx, duplicate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document duplicated",
		"source_id", id,
		"copy_id", duplicate.ID,
		"project_id", duplicate.ProjectID,
	)

	return duplicate, nil
}

// clonePageData deep-copies page content through a JSON round-trip so the
// copy never aliases the original's elements.
func clonePageData(data *models.PageData) (*models.PageData, error) {
	if data == nil {
		return nil, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var clone models.PageData
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// validateCreateRequest validates a document creation request
func (s *documentService) validateCreateRequest(req *docsSvc.CreateDocumentRequest) error {
	if req.FileType != models.FileTypePage {
		if req.PageData != nil {
			return fmt.Errorf("page_data is only valid for pages")
		}
		if req.TemplateID != nil {
			return fmt.Errorf("template_id is only valid for pages")
		}
	}

	fileTypes := make([]interface{}, 0, len(models.ValidFileTypes))
	for _, ft := range models.ValidFileTypes {
		fileTypes = append(fileTypes, ft)
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
		validation.Field(&req.FileType, validation.Required, validation.In(fileTypes...)),
		validation.Field(&req.FileSize, validation.Min(int64(0))),
	)
}
