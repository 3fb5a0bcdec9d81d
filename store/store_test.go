package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dedup "github.com/ideamans/go-dedup-cleaner"
)

func sampleResult(id, root string) *dedup.ScanResult {
	return &dedup.ScanResult{
		ID:             id,
		RootDir:        root,
		TotalFiles:     10,
		DuplicateCount: 4,
		Groups: dedup.DuplicateGroups{
			"photo": {
				{Path: filepath.Join(root, "photo.jpg"), Size: 1024, ModTime: 1000},
				{Path: filepath.Join(root, "photo(1).jpg"), Size: 1024, ModTime: 2000},
			},
			"d41d8cd98f00b204e9800998ecf8427e": {
				{Path: filepath.Join(root, "a.bin"), Size: 2048, ModTime: 1500, Digest: "d41d8cd98f00b204e9800998ecf8427e"},
				{Path: filepath.Join(root, "b.bin"), Size: 2048, ModTime: 1600, Digest: "d41d8cd98f00b204e9800998ecf8427e"},
			},
		},
		ScanDuration: 1500 * time.Millisecond,
		ScannedAt:    time.Unix(1700000000, 0),
	}
}

func TestSaveAndLoadLatest(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	st, err := Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	saved := sampleResult("scan-1", "/cache")
	require.NoError(t, st.Save(ctx, saved))

	loaded, err := st.LoadLatest(ctx, "/cache")
	require.NoError(t, err)

	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, saved.RootDir, loaded.RootDir)
	assert.Equal(t, saved.TotalFiles, loaded.TotalFiles)
	assert.Equal(t, saved.DuplicateCount, loaded.DuplicateCount)
	assert.Equal(t, saved.ScanDuration, loaded.ScanDuration)
	assert.True(t, saved.ScannedAt.Equal(loaded.ScannedAt))

	require.Len(t, loaded.Groups, 2)
	assert.ElementsMatch(t, saved.Groups["photo"], loaded.Groups["photo"])
	assert.ElementsMatch(t,
		saved.Groups["d41d8cd98f00b204e9800998ecf8427e"],
		loaded.Groups["d41d8cd98f00b204e9800998ecf8427e"])
}

func TestSaveReplacesPreviousResult(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	st, err := Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	first := sampleResult("scan-1", "/cache")
	first.ScannedAt = time.Unix(1700000000, 0)
	require.NoError(t, st.Save(ctx, first))

	second := sampleResult("scan-2", "/cache")
	second.ScannedAt = time.Unix(1700001000, 0)
	require.NoError(t, st.Save(ctx, second))

	loaded, err := st.LoadLatest(ctx, "/cache")
	require.NoError(t, err)
	assert.Equal(t, "scan-2", loaded.ID)

	// The earlier result for the same root is gone, not shadowed.
	var count int
	row := st.db.QueryRow(`SELECT COUNT(*) FROM scan_results WHERE root_path = ?`, "/cache")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSaveKeepsOtherRoots(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	st, err := Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.Save(ctx, sampleResult("scan-a", "/cache-a")))
	require.NoError(t, st.Save(ctx, sampleResult("scan-b", "/cache-b")))

	loadedA, err := st.LoadLatest(ctx, "/cache-a")
	require.NoError(t, err)
	assert.Equal(t, "scan-a", loadedA.ID)

	loadedB, err := st.LoadLatest(ctx, "/cache-b")
	require.NoError(t, err)
	assert.Equal(t, "scan-b", loadedB.ID)
}

func TestLoadLatestNoResult(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	st, err := Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.LoadLatest(context.Background(), "/never-scanned")
	assert.ErrorIs(t, err, ErrNoScanResult)
}

func TestDelete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	st, err := Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.Save(ctx, sampleResult("scan-1", "/cache")))
	require.NoError(t, st.Delete(ctx, "scan-1"))

	_, err = st.LoadLatest(ctx, "/cache")
	assert.ErrorIs(t, err, ErrNoScanResult)

	// Files cascade with their result.
	var count int
	row := st.db.QueryRow(`SELECT COUNT(*) FROM scan_files WHERE scan_id = ?`, "scan-1")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 0, count)

	// Deleting an id that is already gone is not an error.
	assert.NoError(t, st.Delete(ctx, "scan-1"))
}

func TestOpenLocked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	st, err := Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	_, err = Open(dbPath)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestOpenReleasesLockOnClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")

	st, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	reopened, err := Open(dbPath)
	require.NoError(t, err)
	defer reopened.Close()
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "results.db")

	st, err := Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Save(context.Background(), sampleResult("scan-1", "/cache")))
}
