package docs

import (
	"context"
	"log/slog"
	"sort"

	"docshelf/internal/config"
	models "docshelf/internal/domain/models/docs"
	docsRepo "docshelf/internal/domain/repositories/docs"
	docsSvc "docshelf/internal/domain/services/docs"
)

// treeService implements the TreeService interface
type treeService struct {
	store    docsRepo.DocumentStore
	notifier docsRepo.ChangeNotifier
	logger   *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	store docsRepo.DocumentStore,
	notifier docsRepo.ChangeNotifier,
	logger *slog.Logger,
) docsSvc.TreeService {
	return &treeService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// ProjectTree builds and returns the sorted document forest for a project
func (s *treeService) ProjectTree(ctx context.Context, projectID string) ([]*models.DocumentNode, error) {
	documents, err := s.store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	forest := BuildForest(documents)

	s.logger.Debug("project tree built",
		"project_id", projectID,
		"document_count", len(documents),
		"root_count", len(forest),
	)

	return forest, nil
}

// BuildForest turns a flat, already project-filtered collection into a
// forest of document nodes using a two-pass map index.
//
// A document whose parent_id does not resolve inside the collection is
// placed at the root rather than dropped: a dangling reference (deleted
// parent, cross-project edge) degrades gracefully instead of hiding the
// subtree. Siblings at every depth are ordered by ascending creation
// time; levels are assigned from the roots on each build.
func BuildForest(documents []models.Document) []*models.DocumentNode {
	// First pass: create all nodes
	index := make(map[string]*models.DocumentNode, len(documents))
	for _, doc := range documents {
		index[doc.ID] = &models.DocumentNode{
			Document: doc,
			Children: []*models.DocumentNode{},
		}
	}

	// Second pass: connect children to parents; everything without a
	// resolvable parent is a root
	roots := make([]*models.DocumentNode, 0)
	for _, doc := range documents {
		node := index[doc.ID]
		if doc.ParentID != nil {
			if parent, exists := index[*doc.ParentID]; exists {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortAndLevel(roots, 0)
	return roots
}

// sortAndLevel orders one sibling list by creation time, stamps its
// depth and recurses, so every level of the forest ends up sorted. The
// stable sort keeps insertion order for equal timestamps. Recursion stops
// at MaxTreeDepth; deeper subtrees stay attached but unsorted.
func sortAndLevel(nodes []*models.DocumentNode, depth int) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
	})

	for _, node := range nodes {
		node.Level = depth
		if depth < config.MaxTreeDepth {
			sortAndLevel(node.Children, depth+1)
		}
	}
}

// WatchProjectTree emits the current forest and then a rebuilt one for
// every change-feed event until ctx ends. Rebuilds are idempotent, so
// duplicated or coalesced events are harmless.
func (s *treeService) WatchProjectTree(ctx context.Context, projectID string) (<-chan []*models.DocumentNode, error) {
	changes, err := s.notifier.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan []*models.DocumentNode, 1)

	go func() {
		defer close(out)

		emit := func() {
			forest, err := s.ProjectTree(ctx, projectID)
			if err != nil {
				// Degrade to an empty forest; the next event retries.
				s.logger.Error("tree rebuild failed", "project_id", projectID, "error", err)
				forest = []*models.DocumentNode{}
			}
			select {
			case out <- forest:
			case <-ctx.Done():
			}
		}

		emit()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				emit()
			}
		}
	}()

	return out, nil
}
