package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"clipforge/internal/services"
)

// Uploader publishes a rendered artifact and returns its public URL.
// Progress, when non-nil, receives 0 to 100 as bytes go out.
type Uploader interface {
	Upload(ctx context.Context, filePath, filename string, progress func(float64)) (string, error)
}

// HTTPUploader PUTs artifacts to an object-storage endpoint.
type HTTPUploader struct {
	endpoint string
	folder   string
	client   *http.Client
}

// HTTPOption configures the HTTP uploader.
type HTTPOption func(*HTTPUploader)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(u *HTTPUploader) {
		if client != nil {
			u.client = client
		}
	}
}

// NewHTTPUploader constructs an uploader targeting endpoint/folder.
func NewHTTPUploader(endpoint, folder string, opts ...HTTPOption) *HTTPUploader {
	uploader := &HTTPUploader{
		endpoint: strings.TrimRight(endpoint, "/"),
		folder:   strings.Trim(folder, "/"),
		client:   &http.Client{Timeout: 30 * time.Minute},
	}
	for _, opt := range opts {
		opt(uploader)
	}
	return uploader
}

func uploadErr(message string, err error) error {
	return services.Wrap(services.ErrUpload, "storage", "upload", message, err)
}

// Upload streams the file at filePath to the configured endpoint and returns
// the public URL. Once begun the transfer runs to completion; cancelling the
// surrounding render session does not abort it.
func (u *HTTPUploader) Upload(ctx context.Context, filePath, filename string, progress func(float64)) (string, error) {
	if u.endpoint == "" {
		return "", uploadErr("no endpoint configured", nil)
	}
	if strings.TrimSpace(filename) == "" {
		return "", uploadErr("filename required", nil)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", uploadErr("open artifact", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", uploadErr("stat artifact", err)
	}

	target, err := u.targetURL(filename)
	if err != nil {
		return "", uploadErr("build target url", err)
	}

	var body io.Reader = file
	if progress != nil {
		body = &progressReader{reader: file, total: info.Size(), report: progress}
	}

	// A partially written object is worse than a late one, so the request
	// outlives the caller's cancellation.
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPut, target, body)
	if err != nil {
		return "", uploadErr("build request", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "video/mp4")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", uploadErr("put artifact", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", uploadErr(fmt.Sprintf("endpoint returned %s", resp.Status), nil)
	}

	if progress != nil {
		progress(100)
	}
	return target, nil
}

func (u *HTTPUploader) targetURL(filename string) (string, error) {
	base, err := url.Parse(u.endpoint)
	if err != nil {
		return "", err
	}
	base.Path = path.Join(base.Path, u.folder, filename)
	return base.String(), nil
}

// progressReader reports cumulative bytes read against a known total.
type progressReader struct {
	reader io.Reader
	total  int64
	read   int64
	report func(float64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		p.read += int64(n)
		if p.total > 0 {
			percent := float64(p.read) / float64(p.total) * 100
			if percent > 100 {
				percent = 100
			}
			p.report(percent)
		}
	}
	return n, err
}

var _ Uploader = (*HTTPUploader)(nil)
