package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

type hooksKey struct{}

type commitHooks struct {
	fns []func()
}

func WithTransaction(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

// Querier returns the transaction carried by ctx, or db when there is none.
func Querier(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := GetTransaction(ctx); tx != nil {
		return tx
	}
	return db
}

// InTransaction runs fn with a transaction attached to its context. A transaction
// already present in ctx is reused and left for the outer caller to finish.
func InTransaction(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context) error) error {
	if GetTransaction(ctx) != nil {
		return fn(ctx)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	hooks := &commitHooks{}
	txCtx := context.WithValue(WithTransaction(ctx, tx), hooksKey{}, hooks)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	for _, hook := range hooks.fns {
		hook()
	}
	return nil
}

// AfterCommit defers fn until the outermost transaction started by InTransaction
// commits. fn is dropped on rollback. Without such a transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn()
}

// Transactor lets services group writes of several stores into one transaction.
type Transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) (*Transactor, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Transactor{db: db}, nil
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return InTransaction(ctx, t.db, fn)
}
