// Package migration moves products cached in the legacy local store into
// the remote catalog, exactly once per installation.
package migration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/almeidarc/affiliate-catalog/internal/model"
	"github.com/almeidarc/affiliate-catalog/pkg/logger"
)

// LocalStore is the slice of the local key-value store the migration needs.
type LocalStore interface {
	Products() ([]model.Product, error)
	Migrated() (bool, error)
	Clear() error
	SetMigrated() error
}

// Importer bulk-upserts products into the remote catalog, keyed on id.
type Importer interface {
	ImportProducts(ctx context.Context, ps []model.Product) ([]model.Product, error)
}

type Migrator struct {
	local    LocalStore
	importer Importer
	logger   logger.Logger
}

func New(local LocalStore, importer Importer, log logger.Logger) *Migrator {
	return &Migrator{
		local:    local,
		importer: importer,
		logger:   log,
	}
}

// Run executes the migration state machine. The migrated flag is only set
// after the upsert succeeds, so a failed run retries on the next start and
// cannot duplicate rows because the upsert keys on id.
func (m *Migrator) Run(ctx context.Context) error {
	const op = "Migrator.Run"

	migrated, err := m.local.Migrated()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if migrated {
		return nil
	}

	products, err := m.local.Products()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(products) > 0 {
		if _, err := m.importer.ImportProducts(ctx, products); err != nil {
			return fmt.Errorf("%s: import local products: %w", op, err)
		}
		if err := m.local.Clear(); err != nil {
			return fmt.Errorf("%s: clear local cache: %w", op, err)
		}
		m.logger.Info("migrated local products to remote store",
			zap.Int("count", len(products)),
		)
	}

	if err := m.local.SetMigrated(); err != nil {
		return fmt.Errorf("%s: set migrated flag: %w", op, err)
	}

	return nil
}
