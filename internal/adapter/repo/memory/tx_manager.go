package memory

import "context"

// TxManager is a passthrough: the memory store has no rollback, so partial
// writes from a failed callback can remain. The optimistic version check in
// SaveWithVersion keeps state writes themselves consistent, which matches
// what the engine relies on.
type TxManager struct{}

func NewTxManager() TxManager {
	return TxManager{}
}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
