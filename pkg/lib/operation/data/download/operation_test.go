package download

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
	"github.com/dsascode/dsc/internal/pkg/manifest"
)

type testDeps struct {
	logger  log.DebugLogger
	fs      filesystem.Fs
	fetcher *fetcher.Fetcher
}

func (d *testDeps) Logger() log.Logger        { return d.logger }
func (d *testDeps) Fs() filesystem.Fs         { return d.fs }
func (d *testDeps) Fetcher() *fetcher.Fetcher { return d.fetcher }

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	logger := log.NewDebugLogger()
	fs, err := aferofs.NewMemoryFs(logger, "")
	require.NoError(t, err)

	f := fetcher.New(logger)
	httpmock.ActivateNonDefault(f.GetRestyClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	return &testDeps{logger: logger, fs: fs, fetcher: f}
}

func TestDownloadPlainFile(t *testing.T) {
	d := newTestDeps(t)
	httpmock.RegisterResponder(
		"GET", "https://example.com/titanic.csv",
		httpmock.NewStringResponder(200, "PassengerId,Survived\n"),
	)

	source := &manifest.DataSource{
		Name: "titanic",
		Type: manifest.SourceTypeHttp,
		URL:  "https://example.com/titanic.csv",
	}
	require.NoError(t, Run(context.Background(), source, d))

	assert.True(t, d.fs.IsFile("data/raw/titanic.csv"))
	assert.True(t, d.fs.IsDir("data/processed"))
}

func TestDownloadZipIsUnpackedAndRemoved(t *testing.T) {
	d := newTestDeps(t)

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	item, err := writer.Create("titanic.csv")
	require.NoError(t, err)
	_, err = item.Write([]byte("PassengerId,Survived\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	httpmock.RegisterResponder(
		"GET", "https://example.com/titanic.zip",
		httpmock.NewBytesResponder(200, buf.Bytes()),
	)

	source := &manifest.DataSource{
		Name: "titanic",
		Type: manifest.SourceTypeHttp,
		URL:  "https://example.com/titanic.zip",
	}
	require.NoError(t, Run(context.Background(), source, d))

	assert.True(t, d.fs.IsFile("data/raw/titanic.csv"))
	assert.False(t, d.fs.Exists("data/raw/titanic.zip"))
}

func TestDownloadCustomTarget(t *testing.T) {
	d := newTestDeps(t)
	httpmock.RegisterResponder(
		"GET", "https://example.com/lookup.csv",
		httpmock.NewStringResponder(200, "a,b\n"),
	)

	source := &manifest.DataSource{
		Name:   "lookup",
		Type:   manifest.SourceTypeHttp,
		URL:    "https://example.com/lookup.csv",
		Target: "data/external",
	}
	require.NoError(t, Run(context.Background(), source, d))

	assert.True(t, d.fs.IsFile("data/external/lookup.csv"))
}

func TestDownloadHttpError(t *testing.T) {
	d := newTestDeps(t)
	httpmock.RegisterResponder(
		"GET", "https://example.com/missing.csv",
		httpmock.NewStringResponder(500, "server error"),
	)

	source := &manifest.DataSource{
		Name: "broken",
		Type: manifest.SourceTypeHttp,
		URL:  "https://example.com/missing.csv",
	}
	err := Run(context.Background(), source, d)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}
