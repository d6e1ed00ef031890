package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/finquery/internal/domain/port/core"
)

// indexStatement is a named DDL statement applied during migration
type indexStatement struct {
	name string
	sql  string
}

// readPathIndexes back the filter and listing queries of the read path
var readPathIndexes = []indexStatement{
	{
		// listing order: created_at DESC with id as tiebreaker
		name: "idx_transactions_created_at_id",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_id ON transactions (created_at DESC, id ASC)`,
	},
	{
		name: "idx_transactions_user_created_at",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_user_created_at ON transactions (user_id, created_at DESC)`,
	},
	{
		name: "idx_transactions_currency",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_currency ON transactions (currency)`,
	},
	{
		name: "idx_transactions_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_pending
		ON transactions (user_id, created_at)
		WHERE status = 'PENDING'`,
	},
}

// AdvancedIndexManager manages PostgreSQL-specific indexes the gorm tags cannot express
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates the read path indexes, stopping at the first failure
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", map[string]any{
		"count": len(readPathIndexes),
	})

	for _, stmt := range readPathIndexes {
		if err := m.db.WithContext(ctx).Exec(stmt.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": stmt.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// ApplyPerformanceTweaks tunes planner statistics; failures are logged and ignored
func (m *AdvancedIndexManager) ApplyPerformanceTweaks(ctx context.Context) {
	tweaks := []indexStatement{
		{name: "transactions.user_id statistics", sql: `ALTER TABLE transactions ALTER COLUMN user_id SET STATISTICS 1000`},
		{name: "transactions.status statistics", sql: `ALTER TABLE transactions ALTER COLUMN status SET STATISTICS 500`},
	}

	for _, tweak := range tweaks {
		if err := m.db.WithContext(ctx).Exec(tweak.sql).Error; err != nil {
			m.logger.Warn("Failed to apply performance tweak", map[string]any{
				"tweak": tweak.name,
				"error": err.Error(),
			})
		}
	}
}
