package database

import (
	"context"
	"fmt"

	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/Behyna/paylink-reconciler/internal/repository"
	"github.com/Behyna/paylink-reconciler/pkg/mysql"
	"github.com/Behyna/paylink-reconciler/pkg/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()

	switch cfg.Database.Driver {
	case DriverMySQL, "":
		return mysql.NewConnection(ctx, cfg.Database.MySQL, logger)
	case DriverSQLite:
		return sqlite.NewConnection(ctx, cfg.Database.SQLite, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Migrate creates the schema and seeds the ledger sequence.
func Migrate(ctx context.Context, db *gorm.DB, ledger config.Ledger) error {
	err := db.WithContext(ctx).AutoMigrate(
		&model.Transaction{},
		&model.SequenceCounter{},
		&model.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	sequences := repository.NewSequenceRepository(db)
	if err := sequences.Ensure(ctx, ledger.SequenceName, ledger.SequenceStart); err != nil {
		return fmt.Errorf("failed to seed sequence %s: %w", ledger.SequenceName, err)
	}

	return nil
}
