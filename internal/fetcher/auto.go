package fetcher

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// AutoFetcher routes each URL to the HTTP or FTP fetcher by scheme.
// Recent extract years publish over HTTPS while some archive years
// are still FTP-only, so one config can mix both.
type AutoFetcher struct {
	http Fetcher
	ftp  Fetcher
}

// NewAutoFetcher creates an AutoFetcher over the two transports.
func NewAutoFetcher(httpFetcher, ftpFetcher Fetcher) *AutoFetcher {
	return &AutoFetcher{http: httpFetcher, ftp: ftpFetcher}
}

func (a *AutoFetcher) pick(rawURL string) (Fetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: parse url %s", rawURL)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return a.http, nil
	case "ftp":
		return a.ftp, nil
	default:
		return nil, eris.Errorf("fetcher: unsupported scheme %q in %s", u.Scheme, rawURL)
	}
}

// Download fetches the URL over whichever transport its scheme names.
func (a *AutoFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	f, err := a.pick(rawURL)
	if err != nil {
		return nil, err
	}
	return f.Download(ctx, rawURL)
}

// DownloadToFile fetches the URL into a local file.
func (a *AutoFetcher) DownloadToFile(ctx context.Context, rawURL, path string) (int64, error) {
	f, err := a.pick(rawURL)
	if err != nil {
		return 0, err
	}
	return f.DownloadToFile(ctx, rawURL, path)
}
