package models

import (
	"strings"
	"time"

	"media-tracker/core/utils"
	catalogmodels "media-tracker/feature/catalog/models"
)

// Status is where a user is with a title.
type Status string

const (
	StatusPlanned   Status = "Planned"
	StatusWatching  Status = "Watching"
	StatusReading   Status = "Reading"
	StatusCompleted Status = "Completed"
	StatusDropped   Status = "Dropped"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusPlanned, StatusWatching, StatusReading, StatusCompleted, StatusDropped}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// MaxUserScore is the top of the rating scale. Zero means unrated.
const MaxUserScore = 10

// ListEntry is one title on one user's list.
type ListEntry struct {
	ID             uint                        `gorm:"column:id;primaryKey" json:"id"`
	UserID         uint                        `gorm:"column:user_id;not null;uniqueIndex:idx_list_user_catalog" json:"user_id"`
	CatalogEntryID uint                        `gorm:"column:catalog_entry_id;not null;uniqueIndex:idx_list_user_catalog" json:"catalog_entry_id"`
	Status         Status                      `gorm:"column:status;size:16;not null" json:"status"`
	Progress       int                         `gorm:"column:progress;not null" json:"progress"`
	UserScore      int                         `gorm:"column:user_score;not null" json:"user_score"`
	Notes          string                      `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt      time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at" json:"updated_at"`
	Catalog        *catalogmodels.CatalogEntry `gorm:"foreignKey:CatalogEntryID;constraint:OnDelete:CASCADE" json:"catalog,omitempty"`
}

// TableName overrides the table name used by GORM.
func (ListEntry) TableName() string {
	return "list_entries"
}

// ClampProgress bounds progress to [0, total]. A nil or zero total is an
// unknown length and only floors at zero.
func ClampProgress(progress int, total *int) int {
	if total != nil && *total > 0 {
		return utils.Clamp(progress, 0, *total)
	}
	return max(progress, 0)
}

// MarkCompleted sets the Completed status and, when the length is known,
// fills progress to it.
func (e *ListEntry) MarkCompleted(total *int) {
	e.Status = StatusCompleted
	if total != nil && *total > 0 {
		e.Progress = *total
	}
}
