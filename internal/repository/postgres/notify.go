package postgres

import (
	"context"
	"fmt"
	"log/slog"

	docsRepo "docshelf/internal/domain/repositories/docs"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentsChannel is the LISTEN/NOTIFY channel for document collection
// changes. Every mutating store operation emits on it.
const DocumentsChannel = "docshelf_documents"

// Listener is a ChangeNotifier backed by Postgres LISTEN/NOTIFY. It holds
// one dedicated connection per subscription for the lifetime of the
// subscriber context.
type Listener struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewListener creates a new LISTEN/NOTIFY change feed
func NewListener(pool *pgxpool.Pool, logger *slog.Logger) *Listener {
	return &Listener{pool: pool, logger: logger}
}

// Subscribe listens on the documents channel and forwards notifications
// as change events. Notifications carry no ordering or dedup guarantees;
// consumers rebuild idempotently. The channel closes when ctx ends.
func (l *Listener) Subscribe(ctx context.Context) (<-chan docsRepo.Change, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+DocumentsChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen on %s: %w", DocumentsChannel, err)
	}

	changes := make(chan docsRepo.Change, 1)

	go func() {
		defer conn.Release()
		defer close(changes)

		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				// ctx cancellation surfaces here as well
				if ctx.Err() == nil {
					l.logger.Warn("notification wait failed", "error", err)
				}
				return
			}

			select {
			case changes <- docsRepo.Change{Key: notification.Payload}:
			default:
				// A pending event already forces a rebuild.
			}
		}
	}()

	return changes, nil
}

var _ docsRepo.ChangeNotifier = (*Listener)(nil)
