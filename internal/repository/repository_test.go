package repository

import (
	"testing"

	"friendchat/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestDB opens a fresh in-memory database with the same gorm settings as
// production, in particular TranslateError, which the pair uniqueness
// behavior depends on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Relationship{}, &model.Notification{}, &model.Message{}))

	return db
}
