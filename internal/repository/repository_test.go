package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	itemDomain "github.com/peershare/service-sharing/internal/domain/item"
	userDomain "github.com/peershare/service-sharing/internal/domain/user"
)

// newTestDB opens an in-memory SQLite database with the full schema. The
// Postgres-only exclusion constraint is not present here; its behavior is
// covered by the integration tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&UserModel{},
		&ItemModel{},
		&RequestModel{},
		&BookingModel{},
		&CommentModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) int64 {
	t.Helper()
	repo := NewGormUserRepository(db)
	u, err := userDomain.New(name, email)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), u)
	require.NoError(t, err)
	return saved.ID
}

func seedItem(t *testing.T, db *gorm.DB, ownerID int64, name string, available bool) int64 {
	t.Helper()
	repo := NewGormItemRepository(db)
	i, err := itemDomain.New(ownerID, name, name+" description", available, 0)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), i)
	require.NoError(t, err)
	return saved.ID()
}

func nowUTC() time.Time { return time.Now().UTC() }

func futureWindow(hours int) (time.Time, time.Time) {
	start := time.Now().UTC().Add(time.Duration(hours) * time.Hour)
	return start, start.Add(24 * time.Hour)
}
