package repositories

import "context"

// TxFn is the unit of work passed to ExecTx. The context it receives may
// carry an open transaction; store methods pick it up via GetTx.
type TxFn func(ctx context.Context) error

// TransactionManager runs multi-step store operations atomically. The
// Postgres backend wraps fn in a database transaction; the blob store
// runs it directly, relying on its single-writer semantics.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
