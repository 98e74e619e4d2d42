package devconnect_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-devconnect/persistence"
)

// newTestDB opens a private in-memory sqlite database with the schema applied
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	ctx := context.Background()
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := persistence.Open(ctx, persistence.Config{
		Driver: persistence.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, persistence.Migrate(ctx, db))
	return db
}
