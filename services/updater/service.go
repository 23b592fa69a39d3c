// Package updater walks the catalog, re-scrapes each model's provider
// breakdown and persists entries whose data actually changed.
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"providerwatch/lib/catalog"
)

// SnapshotSource produces the current provider breakdown for one model.
// *openrouter.Client satisfies this.
type SnapshotSource interface {
	BuildSnapshot(ctx context.Context, modelId string) ([]catalog.Provider, error)
}

// CatalogStore is the durable home of the catalog. catalog.Store
// satisfies this.
type CatalogStore interface {
	Load() (catalog.Catalog, error)
	Commit(catalog.Catalog) error
}

type Service struct {
	store  CatalogStore
	source SnapshotSource
	// minimum delay between models, the upstream rate-limits aggressively
	pacing time.Duration
}

func NewService(store CatalogStore, source SnapshotSource, pacing time.Duration) Service {
	return Service{
		store:  store,
		source: source,
		pacing: pacing,
	}
}

// Run processes every model in catalog order, strictly in serial. Only a
// catalog that can't be loaded aborts the run; per-model scrape and
// commit failures are logged and the run moves on. A commit failure
// deliberately leaves the new snapshot in memory, the next run will
// re-detect the same divergence and retry the write.
func (s Service) Run(ctx context.Context) error {
	cat, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	slog.InfoContext(ctx, "loaded catalog", "models", len(cat.Data))

	for i := range cat.Data {
		if i > 0 {
			// interruptible, a shutdown signal shouldn't wait out the delay
			select {
			case <-ctx.Done():
				slog.InfoContext(ctx, "shutdown requested, stopping between models")
				return nil
			case <-time.After(s.pacing):
			}
		}

		s.processModel(ctx, &cat, i)
	}

	return nil
}

func (s Service) processModel(ctx context.Context, cat *catalog.Catalog, i int) {
	model := &cat.Data[i]
	slog.InfoContext(ctx, "processing model", "model", model.ID)

	candidate, err := s.source.BuildSnapshot(ctx, model.ID)
	if err != nil {
		slog.WarnContext(ctx, "failed to build snapshot", "model", model.ID, "err", err)
		return
	}
	slog.InfoContext(ctx, "built provider snapshot", "model", model.ID, "providers", len(candidate))

	changed, reason := catalog.Diff(model.Providers, candidate)
	if !changed {
		slog.InfoContext(ctx, "no provider changes", "model", model.ID)
		return
	}
	slog.InfoContext(ctx, "provider data changed", "model", model.ID, "reason", reason)

	model.Providers = candidate
	err = s.store.Commit(*cat)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save catalog", "model", model.ID, "err", err)
		return
	}
	slog.InfoContext(ctx, "saved provider data", "model", model.ID)
}
