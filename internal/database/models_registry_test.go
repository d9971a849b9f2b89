package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateCreatesAllTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"users",
		"profile_pages",
		"posts",
		"images",
		"tags",
		"follows",
		"post_tags",
		"post_likes",
	} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestPersistentModelsCoversJoinedEntities(t *testing.T) {
	assert.Len(t, PersistentModels(), 6)
}
