package fetcher_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsascode/dsc/internal/pkg/fetcher"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/filesystem/aferofs"
	"github.com/dsascode/dsc/internal/pkg/log"
)

func newTestFetcher(t *testing.T) (*fetcher.Fetcher, filesystem.Fs, log.DebugLogger) {
	t.Helper()
	logger := log.NewDebugLogger()
	fs, err := aferofs.NewMemoryFs(logger, "")
	require.NoError(t, err)

	f := fetcher.New(logger)
	httpmock.ActivateNonDefault(f.GetRestyClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return f, fs, logger
}

func TestIsZip(t *testing.T) {
	t.Parallel()
	assert.True(t, fetcher.IsZip("data/raw/file.zip"))
	assert.True(t, fetcher.IsZip("FILE.ZIP"))
	assert.False(t, fetcher.IsZip("file.csv"))
	assert.False(t, fetcher.IsZip("file.zip.gz"))
}

func TestDownload(t *testing.T) {
	f, fs, logger := newTestFetcher(t)

	httpmock.RegisterResponder(
		"GET", "https://example.com/dataset/titanic.csv",
		httpmock.NewStringResponder(200, "PassengerId,Survived\n1,0\n"),
	)

	path, err := f.Download(context.Background(), fs, "https://example.com/dataset/titanic.csv", "data/raw", "")
	require.NoError(t, err)
	assert.Equal(t, "data/raw/titanic.csv", path)

	file, err := fs.ReadFile(path, "downloaded file")
	require.NoError(t, err)
	assert.Equal(t, "PassengerId,Survived\n1,0\n", file.Content)
	assert.Contains(t, logger.InfoMessages(), `Downloaded "https://example.com/dataset/titanic.csv" -> "data/raw/titanic.csv".`)
}

func TestDownloadCustomFileName(t *testing.T) {
	f, fs, _ := newTestFetcher(t)

	httpmock.RegisterResponder(
		"GET", "https://example.com/download?id=123",
		httpmock.NewStringResponder(200, "content"),
	)

	path, err := f.Download(context.Background(), fs, "https://example.com/download?id=123", "data/raw", "dataset.csv")
	require.NoError(t, err)
	assert.Equal(t, "data/raw/dataset.csv", path)
}

func TestDownloadHttpError(t *testing.T) {
	f, fs, _ := newTestFetcher(t)

	httpmock.RegisterResponder(
		"GET", "https://example.com/missing.csv",
		httpmock.NewStringResponder(404, "not found"),
	)

	_, err := f.Download(context.Background(), fs, "https://example.com/missing.csv", "data/raw", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `cannot download "https://example.com/missing.csv": HTTP 404`)
}

func TestUnzipRemovesArchive(t *testing.T) {
	f, fs, logger := newTestFetcher(t)

	archive := zipArchive(t, map[string]string{
		"titanic.csv":        "PassengerId,Survived\n",
		"readme.txt":         "about the dataset",
		"nested/details.csv": "a,b\n",
	})
	require.NoError(t, fs.WriteFile(filesystem.NewFile("data/raw/titanic.zip", string(archive))))

	require.NoError(t, f.Unzip(fs, "data/raw/titanic.zip", "data/raw"))

	assert.True(t, fs.IsFile("data/raw/titanic.csv"))
	assert.True(t, fs.IsFile("data/raw/readme.txt"))
	assert.True(t, fs.IsFile("data/raw/nested/details.csv"))

	// No residual archive
	assert.False(t, fs.Exists("data/raw/titanic.zip"))
	assert.Contains(t, logger.InfoMessages(), `Unpacked "data/raw/titanic.zip" -> "data/raw".`)
}

func TestUnzipInvalidArchive(t *testing.T) {
	f, fs, _ := newTestFetcher(t)

	require.NoError(t, fs.WriteFile(filesystem.NewFile("data/raw/file.zip", "not a zip")))

	err := f.Unzip(fs, "data/raw/file.zip", "data/raw")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `archive "data/raw/file.zip" is not a valid ZIP file`)

	// Archive is kept on error
	assert.True(t, fs.Exists("data/raw/file.zip"))
}

func TestUnzipUnsafePath(t *testing.T) {
	f, fs, _ := newTestFetcher(t)

	archive := zipArchive(t, map[string]string{
		"../escape.txt": "malicious",
	})
	require.NoError(t, fs.WriteFile(filesystem.NewFile("data/raw/file.zip", string(archive))))

	err := f.Unzip(fs, "data/raw/file.zip", "data/raw")
	assert.Error(t, err)
	assert.False(t, fs.Exists("escape.txt"))
}

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range files {
		item, err := writer.Create(name)
		require.NoError(t, err)
		_, err = item.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf.Bytes()
}
