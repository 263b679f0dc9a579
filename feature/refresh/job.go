package refresh

import (
	"context"

	"media-tracker/feature/catalog"
	"media-tracker/feature/metadata"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Summary reports one refresh pass.
type Summary struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Failed    int `json:"failed"`
}

// Job re-fetches metadata for every catalogue entry with an external id.
type Job struct {
	store    *catalog.Store
	fetcher  metadata.Fetcher
	cfg      Config
	logger   *zap.Logger
	onUpdate func()
}

// NewJob creates a refresh job.
func NewJob(db *gorm.DB, fetcher metadata.Fetcher, cfg Config, logger *zap.Logger) *Job {
	return &Job{store: catalog.NewStore(db), fetcher: fetcher, cfg: cfg, logger: logger}
}

// OnUpdate registers a callback run after a pass that changed any entry.
func (j *Job) OnUpdate(fn func()) {
	j.onUpdate = fn
}

// Run walks the catalogue in id order. Each changed entry is saved on its
// own so a failure midway keeps earlier updates. Only a failure to read
// the catalogue stops the pass.
func (j *Job) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}
	var after uint

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		batch, err := j.store.ListWithExternalID(ctx, after, j.cfg.batchSize())
		if err != nil {
			return sum, err
		}
		if len(batch) == 0 {
			break
		}

		for _, e := range batch {
			after = e.ID
			sum.Processed++

			m, err := j.fetcher.Fetch(ctx, *e.ExternalID, e.Kind.Endpoint())
			if err != nil {
				j.logger.Warn("Refresh fetch failed", zap.Uint("id", e.ID), zap.Int("external_id", *e.ExternalID), zap.Error(err))
				sum.Failed++
				continue
			}
			if !e.ApplyMetadata(m) {
				continue
			}
			if err := j.store.Save(ctx, e); err != nil {
				j.logger.Error("Refresh save failed", zap.Uint("id", e.ID), zap.Error(err))
				sum.Failed++
				continue
			}
			sum.Updated++
		}
	}

	if sum.Updated > 0 && j.onUpdate != nil {
		j.onUpdate()
	}
	j.logger.Info("Refresh completed",
		zap.Int("processed", sum.Processed),
		zap.Int("updated", sum.Updated),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}
