package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function as one atomic unit of work over a
// transaction-bound Repos bundle. Either every write inside the closure
// commits, or none do.
type TxManager interface {
	Do(ctx context.Context, fn func(r *Repos) error) error
}

// maxTxAttempts bounds the retry loop for transient conflicts.
// Retrying the whole closure is safe because every awarding/creation
// step re-checks for existence before acting.
const maxTxAttempts = 3

type gormTxManager struct {
	db    *gorm.DB
	repos *Repos
}

func NewTxManager(db *gorm.DB, repos *Repos) TxManager {
	return &gormTxManager{db: db, repos: repos}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(r *Repos) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(m.repos.WithTx(tx))
		})
		// Unique violations that reach this point come from idempotent
		// insert races; on re-run the existence check finds the winner's
		// row. Services translate business-level duplicates into their
		// own sentinels before returning, so those never retry.
		if err == nil || !(IsSerializationFailure(err) || IsUniqueViolation(err)) {
			return err
		}
		// transient conflict: re-run the whole operation
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
