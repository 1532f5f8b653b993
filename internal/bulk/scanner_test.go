package bulk

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeProductFolder lays out one product folder under dir.
func writeProductFolder(t *testing.T, dir, name string, files map[string]string, images []string) string {
	t.Helper()

	folder := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Join(folder, "images"), 0o750))

	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(folder, file), []byte(content), 0o600))
	}
	for _, img := range images {
		require.NoError(t, os.WriteFile(filepath.Join(folder, "images", img), []byte("img"), 0o600))
	}
	return folder
}

func TestScannerScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProductFolder(t, dir, "mug", map[string]string{
		"title.txt":       "Artisan Mug\n",
		"description.txt": "A handmade mug",
		"price.txt":       "12.5",
		"sku.txt":         "MUG-1",
	}, []string{"b.jpg", "a.jpg", "notes.txt"})
	writeProductFolder(t, dir, "poster", map[string]string{
		"title.txt":       "Poster",
		"description.txt": "A poster",
		"price.txt":       "4",
	}, nil)

	tasks, report, err := NewScanner(testLogger()).Scan(dir, 5)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 2, report.Tasks)
	assert.Empty(t, report.Errors)
	assert.NotEmpty(t, report.BatchID)

	byTitle := make(map[string]int, len(tasks))
	for i, task := range tasks {
		byTitle[task.Title] = i
		assert.Equal(t, report.BatchID, task.BatchID, "all tasks share the batch ID")
		assert.Equal(t, 5, task.CategoryID)
	}

	mug := tasks[byTitle["Artisan Mug"]]
	assert.Equal(t, "12.50", mug.Price)
	assert.Equal(t, "MUG-1", mug.SKU)
	require.Len(t, mug.ImagePaths, 2, "non-image files are ignored")
	assert.Equal(t, "a.jpg", filepath.Base(mug.ImagePaths[0]), "images sorted by name")
	assert.Equal(t, "b.jpg", filepath.Base(mug.ImagePaths[1]))

	poster := tasks[byTitle["Poster"]]
	assert.Empty(t, poster.ImagePaths)
}

func TestScannerScanSkipsBrokenFolders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProductFolder(t, dir, "good", map[string]string{
		"title.txt":       "Good",
		"description.txt": "fine",
		"price.txt":       "1",
	}, nil)
	writeProductFolder(t, dir, "no-title", map[string]string{
		"description.txt": "fine",
		"price.txt":       "1",
	}, nil)
	writeProductFolder(t, dir, "bad-price", map[string]string{
		"title.txt":       "Bad",
		"description.txt": "fine",
		"price.txt":       "expensive",
	}, nil)

	// Loose files at the top level are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("hi"), 0o600))

	tasks, report, err := NewScanner(testLogger()).Scan(dir, 5)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Good", tasks[0].Title)
	require.Len(t, report.Errors, 2)
	assert.Contains(t, report.Errors[0], "no-title")
	assert.Contains(t, report.Errors[1], "bad-price")
}

func TestScannerScanLooseImages(t *testing.T) {
	t.Parallel()

	// Images directly in the product folder are used when there is no
	// images/ subdirectory.
	dir := t.TempDir()
	folder := filepath.Join(dir, "mug")
	require.NoError(t, os.MkdirAll(folder, 0o750))
	for file, content := range map[string]string{
		"title.txt":       "Mug",
		"description.txt": "desc",
		"price.txt":       "3",
		"photo.webp":      "img",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(folder, file), []byte(content), 0o600))
	}

	tasks, _, err := NewScanner(testLogger()).Scan(dir, 5)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Len(t, tasks[0].ImagePaths, 1)
	assert.Equal(t, "photo.webp", filepath.Base(tasks[0].ImagePaths[0]))
}

func TestScannerScanMissingDirectory(t *testing.T) {
	t.Parallel()

	_, _, err := NewScanner(testLogger()).Scan(filepath.Join(t.TempDir(), "nope"), 5)

	require.Error(t, err)
}

func TestIsImageFile(t *testing.T) {
	t.Parallel()

	assert.True(t, IsImageFile("photo.JPG"))
	assert.True(t, IsImageFile("photo.webp"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("photo"))
}
