package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type ctxKey string

const txKey ctxKey = "tx"

type txState struct {
	tx          *sqlx.Tx
	afterCommit []func()
}

type TransactionManager struct {
	db *sqlx.DB
}

func NewTransactionManager(db *sqlx.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithTransaction runs fn inside a transaction carried by the context. When
// ctx already carries one, fn joins it.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if stateFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	state := &txState{tx: tx}
	txCtx := context.WithValue(ctx, txKey, state)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for _, hook := range state.afterCommit {
		hook()
	}

	return nil
}

// OnCommit defers fn until the transaction in ctx commits, or runs it now if
// there is none.
func OnCommit(ctx context.Context, fn func()) {
	if state := stateFromContext(ctx); state != nil {
		state.afterCommit = append(state.afterCommit, fn)
		return
	}
	fn()
}

func stateFromContext(ctx context.Context) *txState {
	state, _ := ctx.Value(txKey).(*txState)
	return state
}

func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	if state := stateFromContext(ctx); state != nil {
		return state.tx
	}
	return nil
}

func GetExecutor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
