package updater

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"providerwatch/lib/catalog"
	"providerwatch/lib/telemetry"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	snapshots map[string][]catalog.Provider
	errs      map[string]error
	calls     []string
}

func (f *fakeSource) BuildSnapshot(ctx context.Context, modelId string) ([]catalog.Provider, error) {
	f.calls = append(f.calls, modelId)
	if err := f.errs[modelId]; err != nil {
		return nil, err
	}
	return f.snapshots[modelId], nil
}

// flakyStore fails the first `failures` commits, then delegates.
type flakyStore struct {
	catalog.Store
	failures int
}

func (s *flakyStore) Commit(cat catalog.Catalog) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("simulated i/o failure")
	}
	return s.Store.Commit(cat)
}

func str(s string) *string { return &s }
func i64(n int64) *int64   { return &n }

func provider(name string, contextLength int64) catalog.Provider {
	return catalog.Provider{
		Name:    str(name),
		Metrics: catalog.Metrics{ContextLength: i64(contextLength)},
	}
}

func writeCatalog(t *testing.T, contents string) catalog.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return catalog.NewStore(path)
}

const twoModels = `{
	"data": [
		{
			"id": "openai/gpt-4o",
			"created": 1715558400,
			"providers": [
				{ "name": "openai", "metrics": {
					"context_length": 128000,
					"max_output_tokens": null,
					"input_price_per_million": null,
					"output_price_per_million": null,
					"latency_seconds": null,
					"throughput_tokens_per_second": null
				} }
			]
		},
		{ "id": "anthropic/claude-sonnet-4" }
	]
}`

func TestRunCommitsOnlyChangedModels(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:updater")
	defer cleanup()

	store := writeCatalog(t, twoModels)
	source := &fakeSource{snapshots: map[string][]catalog.Provider{
		// unchanged for gpt-4o, new data for claude
		"openai/gpt-4o":             {provider("openai", 128000)},
		"anthropic/claude-sonnet-4": {provider("anthropic", 200000)},
	}}

	svc := NewService(store, source, 0)
	require.NoError(t, svc.Run(context.Background()))
	require.Equal(t, []string{"openai/gpt-4o", "anthropic/claude-sonnet-4"}, source.calls)

	cat, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "anthropic", *cat.Data[1].Providers[0].Name)
	require.Equal(t, int64(200000), *cat.Data[1].Providers[0].Metrics.ContextLength)

	// untouched entry and its unknown keys survive the rewrite
	require.Equal(t, "openai", *cat.Data[0].Providers[0].Name)
	require.Contains(t, cat.Data[0].Extra, "created")
}

func TestRunStoresSentinelForModelsWithoutProviders(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:updater")
	defer cleanup()

	store := writeCatalog(t, `{"data": [{ "id": "some/model" }]}`)
	source := &fakeSource{snapshots: map[string][]catalog.Provider{
		"some/model": catalog.Sentinel(),
	}}

	require.NoError(t, NewService(store, source, 0).Run(context.Background()))

	cat, err := store.Load()
	require.NoError(t, err)
	require.Len(t, cat.Data[0].Providers, 1)
	require.Nil(t, cat.Data[0].Providers[0].Name)
	require.Nil(t, cat.Data[0].Providers[0].Metrics.ContextLength)
}

func TestRunContinuesAfterSnapshotError(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:updater")
	defer cleanup()

	store := writeCatalog(t, twoModels)
	source := &fakeSource{
		snapshots: map[string][]catalog.Provider{
			"anthropic/claude-sonnet-4": {provider("anthropic", 200000)},
		},
		errs: map[string]error{
			"openai/gpt-4o": errors.New("simulated fetch failure"),
		},
	}

	require.NoError(t, NewService(store, source, 0).Run(context.Background()))
	require.Len(t, source.calls, 2)

	cat, err := store.Load()
	require.NoError(t, err)
	// the failed model keeps its old data
	require.Equal(t, "openai", *cat.Data[0].Providers[0].Name)
	require.Equal(t, "anthropic", *cat.Data[1].Providers[0].Name)
}

func TestRunContinuesAfterCommitFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:updater")
	defer cleanup()

	store := &flakyStore{Store: writeCatalog(t, twoModels), failures: 1}
	source := &fakeSource{snapshots: map[string][]catalog.Provider{
		"openai/gpt-4o":             {provider("openai", 999999)},
		"anthropic/claude-sonnet-4": {provider("anthropic", 200000)},
	}}

	require.NoError(t, NewService(store, source, 0).Run(context.Background()))
	require.Len(t, source.calls, 2)

	// the first commit failed but the new snapshot stayed in memory, so the
	// successful commit for the second model carries it to disk as well
	cat, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, int64(999999), *cat.Data[0].Providers[0].Metrics.ContextLength)
	require.Equal(t, "anthropic", *cat.Data[1].Providers[0].Name)
}

func TestRunFailsWhenCatalogUnreadable(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:updater")
	defer cleanup()

	store := catalog.NewStore(filepath.Join(t.TempDir(), "missing.json"))
	source := &fakeSource{}

	err := NewService(store, source, 0).Run(context.Background())
	require.Error(t, err)
	require.Empty(t, source.calls, "no scraping should happen without a baseline")
}

func TestRunStopsBetweenModelsOnShutdown(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:updater")
	defer cleanup()

	store := writeCatalog(t, twoModels)
	source := &fakeSource{snapshots: map[string][]catalog.Provider{
		"openai/gpt-4o": {provider("openai", 128000)},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	require.NoError(t, NewService(store, source, time.Hour).Run(ctx))
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, []string{"openai/gpt-4o"}, source.calls)
}
