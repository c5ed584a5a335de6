package testutil

import (
	"context"
	"testing"

	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/database"
	"github.com/Behyna/paylink-reconciler/pkg/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	SequenceName  = "transaction_id"
	SequenceStart = int64(100000)
)

// LedgerConfig is the sequence configuration NewDB seeds.
var LedgerConfig = config.Ledger{SequenceName: SequenceName, SequenceStart: SequenceStart}

// NewDB returns a migrated in-memory sqlite database closed at test end.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.NewConnection(context.Background(), sqlite.Config{
		Path:     sqlite.MemoryPath,
		LogLevel: "silent",
	}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, database.Migrate(context.Background(), db, LedgerConfig))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
