package importer

import (
	"strings"

	catalogmodels "media-tracker/feature/catalog/models"
	"media-tracker/feature/library/models"
)

// mapStatus translates the export's status vocabulary, including the
// numeric codes of older exports. Anything unrecognized becomes Planned.
func mapStatus(raw string, kind catalogmodels.Kind) models.Status {
	inProgress := models.StatusReading
	if kind == catalogmodels.KindAnime {
		inProgress = models.StatusWatching
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "watching", "reading", "1":
		return inProgress
	case "completed", "2":
		return models.StatusCompleted
	case "on-hold", "on hold", "3", "dropped", "4":
		return models.StatusDropped
	case "plan to watch", "plan to read", "6":
		return models.StatusPlanned
	default:
		return models.StatusPlanned
	}
}
