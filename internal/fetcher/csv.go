package fetcher

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CSVOptions configures the streaming CSV parser.
type CSVOptions struct {
	// Latin1 decodes the input from ISO 8859-1. DOL extracts predate
	// UTF-8 and carry accented sponsor names in Latin-1.
	Latin1     bool
	HasHeader  bool
	LazyQuotes bool
}

// StreamCSV reads CSV rows into a channel so large extracts never sit
// fully in memory. The caller must drain the row channel; both
// channels close when parsing ends.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		if opts.Latin1 {
			r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
		}

		reader := csv.NewReader(r)
		reader.LazyQuotes = opts.LazyQuotes
		reader.FieldsPerRecord = -1

		first := true
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "fetcher: read csv row")
				return
			}

			if first && opts.HasHeader {
				first = false
				continue
			}
			first = false

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "fetcher: csv stream cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}
