package fetcher

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"

	"github.com/dsascode/dsc/internal/pkg/build"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
)

// Fetcher downloads files over HTTP into the project filesystem.
// No checksum verification and no resumption, a failed download
// is retried from scratch by the client retry policy.
type Fetcher struct {
	logger   log.Logger
	client   *resty.Client
	progress bool
}

func New(logger log.Logger) *Fetcher {
	client := resty.New()
	client.SetHeader("User-Agent", "dsc/"+build.BuildVersion)
	client.SetRetryCount(3)
	client.RetryWaitTime = 100 * time.Millisecond
	client.RetryMaxWaitTime = 2 * time.Second
	return &Fetcher{logger: logger, client: client}
}

// WithProgress enables a progress bar on an interactive terminal.
func (f *Fetcher) WithProgress(v bool) *Fetcher {
	f.progress = v
	return f
}

func (f *Fetcher) GetRestyClient() *resty.Client {
	return f.client
}

// Download the URL into the target directory, returns the stored path.
func (f *Fetcher) Download(ctx context.Context, fs filesystem.Fs, rawUrl, targetDir, fileName string) (string, error) {
	if fileName == "" {
		fileName = fileNameFromUrl(rawUrl)
	}
	path := filesystem.Join(targetDir, fileName)

	if err := fs.Mkdir(targetDir); err != nil {
		return "", err
	}

	resp, err := f.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(rawUrl)
	if err != nil {
		return "", fmt.Errorf(`cannot download "%s": %w`, rawUrl, err)
	}

	body := resp.RawBody()
	defer func() {
		_ = body.Close()
	}()

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf(`cannot download "%s": HTTP %d`, rawUrl, resp.StatusCode())
	}

	out, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf(`cannot create file "%s": %w`, path, err)
	}

	var reader io.Reader = body
	if f.progress {
		bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, "downloading")
		reader = io.TeeReader(body, bar)
	}

	if _, err := io.Copy(out, reader); err != nil {
		_ = out.Close()
		return "", fmt.Errorf(`cannot write file "%s": %w`, path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf(`cannot close file "%s": %w`, path, err)
	}

	f.logger.Infof(`Downloaded "%s" -> "%s".`, rawUrl, path)
	return path, nil
}

// IsZip by the file extension.
func IsZip(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".zip")
}

// Unzip the archive into the target directory and remove the archive,
// so no residual archive file is left behind.
func (f *Fetcher) Unzip(fs filesystem.Fs, archivePath, targetDir string) error {
	archive, err := fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf(`cannot open archive "%s": %w`, archivePath, err)
	}
	data, err := io.ReadAll(archive)
	_ = archive.Close()
	if err != nil {
		return fmt.Errorf(`cannot read archive "%s": %w`, archivePath, err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf(`archive "%s" is not a valid ZIP file: %w`, archivePath, err)
	}

	for _, item := range reader.File {
		if err := f.unzipItem(fs, item, targetDir); err != nil {
			return err
		}
	}

	// Remove the archive
	if err := fs.Remove(archivePath); err != nil {
		return fmt.Errorf(`cannot remove archive "%s": %w`, archivePath, err)
	}

	f.logger.Infof(`Unpacked "%s" -> "%s".`, archivePath, targetDir)
	return nil
}

func (f *Fetcher) unzipItem(fs filesystem.Fs, item *zip.File, targetDir string) error {
	// Item path must stay in the target directory
	name := item.Name
	if strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
		return fmt.Errorf(`archive item "%s" has an unsafe path`, log.Sanitize(name))
	}
	path := filesystem.Join(targetDir, name)

	if item.FileInfo().IsDir() {
		return fs.Mkdir(path)
	}

	in, err := item.Open()
	if err != nil {
		return fmt.Errorf(`cannot read archive item "%s": %w`, name, err)
	}
	defer func() {
		_ = in.Close()
	}()

	if dir := filesystem.Dir(path); dir != "." {
		if err := fs.Mkdir(dir); err != nil {
			return err
		}
	}

	out, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf(`cannot create file "%s": %w`, path, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf(`cannot write file "%s": %w`, path, err)
	}
	return out.Close()
}

func fileNameFromUrl(rawUrl string) string {
	if u, err := url.Parse(rawUrl); err == nil {
		if name := filesystem.Base(u.Path); name != "." && name != "/" && name != "" {
			return name
		}
	}
	return "download"
}
