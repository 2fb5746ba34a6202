package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventureatlas/guide-extractor/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, started time.Time) domain.RunStats {
	return domain.RunStats{
		RunID:      id,
		Source:     "guide.pdf",
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Parse: domain.ParseStats{
			Processed:        120,
			Successful:       111,
			Failed:           9,
			UnknownCountries: 4,
		},
		Enrichment: domain.EnrichmentStats{
			Requested:     111,
			Fulfilled:     100,
			FellBack:      11,
			BatchFailures: 2,
		},
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, sampleRun("run-1", base)))
	require.NoError(t, store.Record(ctx, sampleRun("run-2", base.Add(time.Hour))))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, "run-1", runs[1].RunID)

	got := runs[1]
	assert.Equal(t, "guide.pdf", got.Source)
	assert.True(t, got.StartedAt.Equal(base))
	assert.Equal(t, 42*time.Second, got.Duration())
	assert.Equal(t, 111, got.Parse.Successful)
	assert.Equal(t, 4, got.Parse.UnknownCountries)
	assert.Equal(t, 11, got.Enrichment.FellBack)
	assert.Equal(t, 2, got.Enrichment.BatchFailures)
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := sampleRun("", base.Add(time.Duration(i)*time.Minute))
		run.RunID = string(rune('a' + i))
		require.NoError(t, store.Record(ctx, run))
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "e", runs[0].RunID)
}

func TestStore_RecentEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
