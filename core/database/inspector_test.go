package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_titles (id INTEGER PRIMARY KEY, title TEXT NOT NULL, synopsis TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_titles")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "PRI", colMap["id"].Key)
	assert.Equal(t, "text", colMap["title"].Type)
	assert.Equal(t, "NO", colMap["title"].Null)
	assert.Equal(t, "YES", colMap["synopsis"].Null)

	// PRAGMA table_info is empty, not an error, for unknown tables
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SHOW COLUMNS FROM `catalog_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
			AddRow("Title", "VARCHAR(255)", "NO", "", nil, ""))

	columns, err := GetTableColumns(db, "catalog_entries")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "bigint unsigned", columns[0].Type)
	assert.Equal(t, "varchar(255)", columns[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
