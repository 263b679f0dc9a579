package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"media-tracker/feature/catalog"
	catalogmodels "media-tracker/feature/catalog/models"
	"media-tracker/feature/library"
	"media-tracker/feature/library/models"
	"media-tracker/feature/metadata"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options selects which personal fields are copied from the export.
// Status and progress are imported together under ImportDates.
type Options struct {
	ImportScores bool
	ImportNotes  bool
	ImportDates  bool
	// Filename is recorded with the archived document.
	Filename string
}

// Result summarizes one import. It is returned even when the import fails.
type Result struct {
	Success                  bool     `json:"success"`
	Message                  string   `json:"message"`
	Imported                 int      `json:"imported"`
	Updated                  int      `json:"updated"`
	Skipped                  int      `json:"skipped"`
	NewCatalogEntriesCreated int      `json:"new_catalog_entries_created"`
	CatalogEntriesUpdated    int      `json:"catalog_entries_updated"`
	Errors                   []string `json:"errors"`
	ArchiveKey               string   `json:"archive_key,omitempty"`

	failures []*EntryError
}

// Failures returns the recoverable per-entry errors.
func (r *Result) Failures() []*EntryError {
	return r.failures
}

func (r *Result) record(err *EntryError) {
	r.failures = append(r.failures, err)
	r.Errors = append(r.Errors, err.Error())
}

// Reconciler imports list exports into the catalogue and a user's list.
type Reconciler struct {
	db       *gorm.DB
	fetcher  metadata.Fetcher
	archiver *Archiver
	onCommit func()
	logger   *zap.Logger
}

// NewReconciler creates a reconciler. fetcher is shared with every other
// caller of the metadata API.
func NewReconciler(db *gorm.DB, fetcher metadata.Fetcher, logger *zap.Logger) *Reconciler {
	return &Reconciler{db: db, fetcher: fetcher, logger: logger}
}

// SetArchiver enables archiving of uploaded documents.
func (r *Reconciler) SetArchiver(a *Archiver) {
	r.archiver = a
}

// OnCommit registers a callback run after every committed import.
func (r *Reconciler) OnCommit(fn func()) {
	r.onCommit = fn
}

// Import reconciles document into the catalogue and userID's list.
//
// The returned error is ErrDocumentFormat (nothing written) or ErrCommit
// (everything rolled back). Per-entry failures are only recorded in the
// result.
func (r *Reconciler) Import(ctx context.Context, userID uint, document io.Reader, opts Options) (*Result, error) {
	res := &Result{Errors: []string{}}
	log := r.logger.With(zap.Uint("user_id", userID))

	raw, err := io.ReadAll(document)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrDocumentFormat, err)
		res.Message = err.Error()
		return res, err
	}
	if r.archiver != nil {
		key, err := r.archiver.Store(ctx, userID, opts.Filename, raw)
		if err != nil {
			log.Warn("Archiving import failed", zap.Error(err))
		} else {
			res.ArchiveKey = key
		}
	}

	entries, err := parseDocument(bytes.NewReader(raw))
	if err != nil {
		res.Message = err.Error()
		return res, err
	}

	valid := r.extract(entries, res)
	log.Info("Import started", zap.Int("entries", len(entries)), zap.Int("valid", len(valid)))

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.reconcile(ctx, tx, userID, valid, opts, res)
	})
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrCommit, err)
		log.Error("Import rolled back", zap.Error(err), zap.Int("errors", len(res.Errors)))
		res.Success = false
		res.Imported, res.Updated, res.NewCatalogEntriesCreated, res.CatalogEntriesUpdated = 0, 0, 0, 0
		res.Message = "Failed to save changes: " + err.Error()
		return res, err
	}

	if r.onCommit != nil {
		r.onCommit()
	}

	res.Success = true
	res.Message = summary(res)
	log.Info("Import completed",
		zap.Int("imported", res.Imported),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped),
		zap.Int("catalog_created", res.NewCatalogEntriesCreated),
		zap.Int("catalog_updated", res.CatalogEntriesUpdated),
		zap.Int("errors", len(res.Errors)),
	)
	return res, nil
}

// extract drops entries without a usable id and repeats of an id already
// seen. Both count as skipped.
func (r *Reconciler) extract(entries []entry, res *Result) []entry {
	seen := make(map[int]bool, len(entries))
	valid := make([]entry, 0, len(entries))
	for _, e := range entries {
		if e.ExternalID == 0 {
			r.logger.Debug("Skipping entry without usable id", zap.Int("position", e.Position), zap.String("raw_id", e.RawID))
			res.Skipped++
			continue
		}
		if seen[e.ExternalID] {
			res.Skipped++
			continue
		}
		seen[e.ExternalID] = true
		valid = append(valid, e)
	}
	return valid
}

func (r *Reconciler) reconcile(ctx context.Context, tx *gorm.DB, userID uint, valid []entry, opts Options, res *Result) error {
	catalogStore := catalog.NewStore(tx)

	ids := make([]int, len(valid))
	for i, e := range valid {
		ids[i] = e.ExternalID
	}
	known, err := catalogStore.FindByExternalIDs(ctx, ids)
	if err != nil {
		return err
	}

	resolved := make(map[int]*catalogmodels.CatalogEntry, len(valid))
	var stale []entry
	for _, e := range valid {
		if ce, ok := known[e.ExternalID]; ok {
			resolved[e.ExternalID] = ce
			if ce.NeedsEnrichment() {
				stale = append(stale, e)
			}
		}
	}

	// Missing entries are fetched one at a time, in document order.
	for _, e := range valid {
		if _, ok := known[e.ExternalID]; ok {
			continue
		}
		if ce := r.createMissing(ctx, catalogStore, e, res); ce != nil {
			resolved[e.ExternalID] = ce
		}
	}

	for _, e := range stale {
		r.enrichStale(ctx, tx, resolved[e.ExternalID], e, res)
	}

	for _, e := range valid {
		ce, ok := resolved[e.ExternalID]
		if !ok {
			res.Skipped++
			continue
		}

		var created bool
		err := tx.Transaction(func(stx *gorm.DB) error {
			var err error
			created, err = upsertListEntry(ctx, library.NewStore(stx), userID, ce, e, opts)
			return err
		})
		switch {
		case err != nil:
			res.record(&EntryError{ExternalID: e.ExternalID, Stage: StageList, Err: err})
			res.Skipped++
		case created:
			res.Imported++
		default:
			res.Updated++
		}
	}
	return nil
}

// createMissing fetches metadata for an unknown id and inserts the entry.
// When the fetch fails the entry is built from the document alone.
func (r *Reconciler) createMissing(ctx context.Context, store *catalog.Store, e entry, res *Result) *catalogmodels.CatalogEntry {
	var ce *catalogmodels.CatalogEntry
	m, err := r.fetcher.Fetch(ctx, e.ExternalID, e.Kind.Endpoint())
	if err != nil {
		r.logger.Warn("Metadata fetch failed, using document fields",
			zap.Int("external_id", e.ExternalID), zap.Error(err))
		res.record(&EntryError{ExternalID: e.ExternalID, Stage: StageMetadata, Err: err})
		ce = e.minimal()
	} else {
		ce = catalogmodels.NewFromMetadata(m, e.Kind)
		if strings.TrimSpace(m.Title) == "" && e.Title != "" {
			ce.Title = e.Title
		}
		if ce.TotalUnits == nil {
			ce.TotalUnits = e.TotalUnits
		}
	}

	created, err := store.Create(ctx, ce)
	if err != nil {
		res.record(&EntryError{ExternalID: e.ExternalID, Stage: StageCatalog, Err: err})
		return nil
	}
	if created {
		res.NewCatalogEntriesCreated++
	}
	return ce
}

// enrichStale fills the gaps of a known entry from a fresh fetch.
func (r *Reconciler) enrichStale(ctx context.Context, tx *gorm.DB, ce *catalogmodels.CatalogEntry, e entry, res *Result) {
	m, err := r.fetcher.Fetch(ctx, e.ExternalID, ce.Kind.Endpoint())
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			r.logger.Warn("Metadata refresh failed", zap.Int("external_id", e.ExternalID), zap.Error(err))
		}
		res.record(&EntryError{ExternalID: e.ExternalID, Stage: StageMetadata, Err: err})
		return
	}
	if !ce.ApplyMetadata(m) {
		return
	}

	err = tx.Transaction(func(stx *gorm.DB) error {
		return catalog.NewStore(stx).Save(ctx, ce)
	})
	if err != nil {
		res.record(&EntryError{ExternalID: e.ExternalID, Stage: StageCatalog, Err: err})
		return
	}
	res.CatalogEntriesUpdated++
}

func upsertListEntry(ctx context.Context, store *library.Store, userID uint, ce *catalogmodels.CatalogEntry, e entry, opts Options) (bool, error) {
	le, created, err := store.FindOrCreate(ctx, userID, ce.ID)
	if err != nil {
		return false, err
	}

	if opts.ImportDates {
		if e.Status != "" {
			le.Status = mapStatus(e.Status, ce.Kind)
		}
		if e.Progress != nil {
			le.Progress = *e.Progress
		}
		if le.Status == models.StatusCompleted {
			le.MarkCompleted(ce.TotalUnits)
		}
	}
	if opts.ImportScores && e.Score != nil {
		le.UserScore = *e.Score
	}
	if opts.ImportNotes && e.Notes != "" {
		le.Notes = e.Notes
	}
	le.Progress = models.ClampProgress(le.Progress, ce.TotalUnits)

	if err := store.Save(ctx, le); err != nil {
		return false, err
	}
	return created, nil
}

func summary(res *Result) string {
	parts := []string{fmt.Sprintf("Import completed! %d new items added, %d items updated, %d items skipped.",
		res.Imported, res.Updated, res.Skipped)}
	if res.NewCatalogEntriesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d new anime/manga added to database.", res.NewCatalogEntriesCreated))
	}
	if res.CatalogEntriesUpdated > 0 {
		parts = append(parts, fmt.Sprintf("%d existing anime/manga records updated.", res.CatalogEntriesUpdated))
	}
	if len(res.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("%d errors occurred.", len(res.Errors)))
	}
	return strings.Join(parts, " ")
}
