// Package database handles database connections, migrations and schema inspection.
//
// It wraps GORM and configures either MySQL (production) or SQLite (embedded
// deployments and tests) from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool limits, enables GORM's
// error translation so unique violations surface as gorm.ErrDuplicatedKey and
// pings the server before returning.
//
// # Schema Inspection
//
// GetTableColumns returns the live columns of a table. The health feature
// compares them with the columns declared on the catalogue and list models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "catalog_entries")
package database
