package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adminizer/giving/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocs() []schema.Document {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []schema.Document{
		{ID: "jan", Name: "january.csv", Category: schema.DonorDataCategory, CreatedAt: base},
		{ID: "broken", Name: "broken.csv", Category: schema.DonorDataCategory, CreatedAt: base.Add(time.Hour)},
		{ID: "missing", Name: "missing.csv", Category: schema.DonorDataCategory, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "feb", Name: "february.csv", Category: schema.DonorDataCategory, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func testSource() *fakeSource {
	return &fakeSource{
		docs: testDocs(),
		bodies: map[string]string{
			"jan":    januaryCSV,
			"broken": "Color,Size\nred,L\n",
			"feb":    februaryCSV,
		},
	}
}

func TestSyncer_Sync(t *testing.T) {
	ctx := context.Background()
	im, store := newTestImporter(t)
	source := testSource()
	syncer := NewSyncer(source, im)

	n, err := syncer.UnprocessedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	result := syncer.Sync(ctx)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ProcessedCount)
	assert.Equal(t, 5, result.TotalDonorsAdded, "2 from january plus 3 from february")
	assert.Empty(t, result.Error)
	assert.Equal(t, []string{"jan", "broken", "missing", "feb"}, source.opened)

	processed, err := store.GetProcessedDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, processed, 2)
	assert.Equal(t, "feb", processed[0].ID)
	assert.Equal(t, "jan", processed[1].ID)

	// Failed documents stay pending.
	n, err = syncer.UnprocessedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	pending, err := syncer.HasUnprocessed(ctx)
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestSyncer_SkipsProcessed(t *testing.T) {
	ctx := context.Background()
	im, store := newTestImporter(t)
	source := testSource()
	syncer := NewSyncer(source, im)

	first := syncer.Sync(ctx)
	require.True(t, first.Success)

	source.opened = nil
	second := syncer.Sync(ctx)
	assert.True(t, second.Success)
	assert.Zero(t, second.ProcessedCount)
	assert.Zero(t, second.TotalDonorsAdded)
	assert.Equal(t, []string{"broken", "missing"}, source.opened)

	history, err := store.GetUploadHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2, "processed documents are not imported twice")
}

func TestSyncer_ListFailure(t *testing.T) {
	im, _ := newTestImporter(t)
	syncer := NewSyncer(&fakeSource{listErr: errors.New("offline")}, im)

	result := syncer.Sync(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "offline")
	assert.Zero(t, result.ProcessedCount)

	_, err := syncer.UnprocessedCount(context.Background())
	assert.Error(t, err)
}

func TestSyncer_NothingToSync(t *testing.T) {
	im, _ := newTestImporter(t)
	syncer := NewSyncer(&fakeSource{}, im)

	result := syncer.Sync(context.Background())
	assert.True(t, result.Success)
	assert.Zero(t, result.ProcessedCount)

	pending, err := syncer.HasUnprocessed(context.Background())
	require.NoError(t, err)
	assert.False(t, pending)
}
