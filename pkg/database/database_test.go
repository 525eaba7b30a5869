package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestNewDatabaseSQLite(t *testing.T) {
	db, err := NewDatabase(DriverSQLite, ":memory:", logger.Silent)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, DriverSQLite, db.Driver)

	var one int
	require.NoError(t, db.DB.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestNewDatabaseUnknownDriver(t *testing.T) {
	_, err := NewDatabase("mssql", "whatever", logger.Silent)
	assert.EqualError(t, err, `unsupported database driver "mssql"`)
}
