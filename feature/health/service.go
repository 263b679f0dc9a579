package health

import (
	"context"

	"media-tracker/core/storage"
	"media-tracker/feature/health/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Status values of a health report and its components.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDegraded = "degraded"
	StatusSkipped  = "skipped"
)

// Component is the outcome of one check.
type Component struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the combined health of the service.
type Report struct {
	Status   string                `json:"status"`
	Database Component             `json:"database"`
	Schema   *checks.SchemaReport  `json:"schema,omitempty"`
	Storage  Component             `json:"storage"`
	Archive  *checks.StorageReport `json:"archive,omitempty"`
}

// Service runs the health checks.
type Service struct {
	db     *gorm.DB
	models []any
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewService creates a health service checking models' tables. client may
// be nil when object storage is not configured.
func NewService(db *gorm.DB, models []any, client storage.Client, bucket, prefix string, logger *zap.Logger) *Service {
	return &Service{db: db, models: models, client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// Check runs every check. The database is critical: if it fails the report
// is "error". Schema drift or a storage failure only degrade it.
func (s *Service) Check(ctx context.Context) *Report {
	r := &Report{Status: StatusOK}

	if err := checks.PingDatabase(ctx, s.db); err != nil {
		r.Database = Component{Status: StatusError, Error: err.Error()}
		r.Status = StatusError
	} else {
		r.Database = Component{Status: StatusOK}
		schema, err := checks.CheckSchema(s.db, s.models...)
		if err != nil {
			s.logger.Error("Schema check failed", zap.Error(err))
		}
		r.Schema = schema
		if schema == nil || !schema.Matched {
			r.Status = StatusDegraded
		}
	}

	if s.client == nil {
		r.Storage = Component{Status: StatusSkipped}
	} else {
		archive, err := checks.CheckStorage(ctx, s.client, s.bucket, s.prefix)
		r.Archive = archive
		if err != nil {
			r.Storage = Component{Status: StatusError, Error: err.Error()}
			if r.Status == StatusOK {
				r.Status = StatusDegraded
			}
		} else {
			r.Storage = Component{Status: StatusOK}
		}
	}

	return r
}
