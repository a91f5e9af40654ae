package docs

import (
	"context"

	"docshelf/internal/domain/models/docs"
)

// TreeService turns the flat project collection into a sorted forest of
// document nodes ready for tree-structured rendering.
type TreeService interface {
	// ProjectTree builds the forest for one project. The build is
	// recomputed from scratch on every call, so repeated invocations with
	// no intervening mutation return structurally identical forests.
	ProjectTree(ctx context.Context, projectID string) ([]*docs.DocumentNode, error)

	// WatchProjectTree rebuilds the forest whenever the store's change
	// feed fires and delivers each rebuilt forest on the returned channel.
	// The channel is closed when ctx is cancelled.
	WatchProjectTree(ctx context.Context, projectID string) (<-chan []*docs.DocumentNode, error)
}
