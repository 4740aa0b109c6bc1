package database

import "context"

type txKey struct{}

// txInfo holds the transaction in context and whether this scope began it.
type txInfo struct {
	tx    Transaction
	owned bool
}

// WithTx stores a transaction in the context. owned marks the scope that
// must commit or roll it back.
func WithTx(ctx context.Context, tx Transaction, owned bool) context.Context {
	return context.WithValue(ctx, txKey{}, txInfo{tx: tx, owned: owned})
}

func txFromContext(ctx context.Context) (txInfo, bool) {
	info, ok := ctx.Value(txKey{}).(txInfo)
	if !ok || info.tx == nil {
		return txInfo{}, false
	}
	return info, true
}

// TxFromContext returns the transaction bound to ctx, or nil.
func TxFromContext(ctx context.Context) Transaction {
	info, _ := txFromContext(ctx)
	return info.tx
}

// ExecutorFromContext returns the transaction if present, otherwise the connection.
// Repositories use it to join a surrounding unit of work transparently.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return conn
}
