// Package fetcher downloads DOL disclosure extracts over HTTP and FTP
// and unpacks the ZIP/CSV containers they ship in.
package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads remote extract data.
type Fetcher interface {
	// Download fetches the URL and returns the response body. The
	// caller must close the reader.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL into a local file and returns
	// the number of bytes written.
	DownloadToFile(ctx context.Context, url, path string) (int64, error)
}
