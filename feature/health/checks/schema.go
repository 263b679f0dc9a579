package checks

import (
	"fmt"
	"reflect"
	"strings"

	"media-tracker/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing models against the live schema.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport is the outcome for one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the database schema using GORM models as the source
// of truth. Only fields with a column tag are checked, and their type only
// when the tag pins one.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		tabler, ok := reflect.New(typ).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", typ.Name())
		}
		tableName := tabler.TableName()

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}
		if len(actualCols) == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("Table %s does not exist", tableName))
			report.Matched = false
			continue
		}

		actual := make(map[string]database.ColumnInfo, len(actualCols))
		for _, col := range actualCols {
			actual[col.Field] = col
		}

		tbl := TableReport{MissingColumns: []string{}, TypeMismatches: []string{}, Status: "ok"}
		for i := 0; i < typ.NumField(); i++ {
			tag := typ.Field(i).Tag.Get("gorm")
			colName := parseGormColumn(tag)
			if colName == "" {
				continue
			}

			col, exists := actual[colName]
			if !exists {
				tbl.MissingColumns = append(tbl.MissingColumns, colName)
				tbl.Status = "error"
				continue
			}

			// Soft check: "text" matches "text", "mediumtext" and so on.
			if expType := strings.ToLower(parseGormType(tag)); expType != "" && !strings.Contains(col.Type, expType) {
				tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
				tbl.Status = "error"
			}
		}

		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tbl
	}

	return report, nil
}

func parseGormColumn(tag string) string {
	return tagValue(tag, "column:")
}

func parseGormType(tag string) string {
	return tagValue(tag, "type:")
}

func tagValue(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, key) {
			return strings.TrimPrefix(p, key)
		}
	}
	return ""
}
