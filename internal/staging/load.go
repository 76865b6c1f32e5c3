package staging

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/ple-import/internal/fetcher"
	"github.com/sells-group/ple-import/internal/model"
)

// DefaultBatchSize is the COPY batch size used when the config does
// not override it.
const DefaultBatchSize = 5000

// extractColumns names the header columns of one form extract.
type extractColumns struct {
	ackID        string
	sponsor      string
	city         string
	state        string
	ein          string
	plan         string
	received     string
	participants string
	assets       string
}

// columnsByForm maps each form kind to its extract's header names.
// The three extracts describe the same facts under different headers.
var columnsByForm = map[model.FormKind]extractColumns{
	model.Form5500: {
		ackID:        "ACK_ID",
		sponsor:      "SPONSOR_DFE_NAME",
		city:         "SPONS_DFE_MAIL_US_CITY",
		state:        "SPONS_DFE_MAIL_US_STATE",
		ein:          "SPONS_DFE_EIN",
		plan:         "PLAN_NAME",
		received:     "DATE_RECEIVED",
		participants: "TOT_PARTCP_BOY_CNT",
		assets:       "TOT_ASSETS_EOY_AMT",
	},
	model.Form5500SF: {
		ackID:        "ACK_ID",
		sponsor:      "SF_SPONSOR_NAME",
		city:         "SF_SPONS_US_CITY",
		state:        "SF_SPONS_US_STATE",
		ein:          "SF_SPONS_EIN",
		plan:         "SF_PLAN_NAME",
		received:     "SF_DATE_RECEIVED",
		participants: "SF_TOT_PARTCP_BOY_CNT",
		assets:       "SF_TOT_ASSETS_EOY_AMT",
	},
	model.ScheduleA: {
		ackID:        "ACK_ID",
		sponsor:      "INS_CARRIER_NAME",
		city:         "INS_CARRIER_US_CITY",
		state:        "INS_CARRIER_US_STATE",
		ein:          "INS_CARRIER_EIN",
		plan:         "SCH_A_PLAN_NAME",
		received:     "SCH_A_DATE_RECEIVED",
		participants: "COVERED_PERS_BOY_CNT",
		assets:       "TOT_CHARGES_PAID_AMT",
	},
}

// Loader downloads form extracts and stages their rows verbatim.
type Loader struct {
	fetch     fetcher.Fetcher
	store     Store
	batchSize int
	log       *zap.Logger
}

// NewLoader creates a Loader. A batchSize of 0 or below falls back to
// DefaultBatchSize.
func NewLoader(fetch fetcher.Fetcher, store Store, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{
		fetch:     fetch,
		store:     store,
		batchSize: batchSize,
		log:       zap.L().With(zap.String("component", "staging")),
	}
}

// Load downloads one form's extract archive, unpacks it, and stages
// every row. Rows are staged as-is; no validation or typing happens
// here, so a malformed extract still loads completely.
func (l *Loader) Load(ctx context.Context, form model.FormKind, url string) (int64, error) {
	cols, ok := columnsByForm[form]
	if !ok {
		return 0, eris.Errorf("staging: no column mapping for form %s", form)
	}

	l.log.Info("downloading extract", zap.String("form", string(form)), zap.String("url", url))

	workDir, err := os.MkdirTemp("", "ple-import-*")
	if err != nil {
		return 0, eris.Wrap(err, "staging: create work dir")
	}
	defer os.RemoveAll(workDir) //nolint:errcheck

	zipPath := filepath.Join(workDir, string(form)+".zip")
	if _, err := l.fetch.DownloadToFile(ctx, url, zipPath); err != nil {
		return 0, err
	}

	csvPath, err := fetcher.ExtractZIPSingle(zipPath, workDir)
	if err != nil {
		return 0, err
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return 0, eris.Wrap(err, "staging: open extract csv")
	}
	defer file.Close() //nolint:errcheck

	return l.stage(ctx, form, cols, file)
}

// LoadAll loads several form extracts concurrently. One failure
// cancels the others; partially staged forms stay staged and a rerun
// simply re-stages them.
func (l *Loader) LoadAll(ctx context.Context, urls map[model.FormKind]string) (map[model.FormKind]int64, error) {
	g, ctx := errgroup.WithContext(ctx)

	counts := make(map[model.FormKind]int64, len(urls))
	forms := make([]model.FormKind, 0, len(urls))
	for form := range urls {
		forms = append(forms, form)
	}
	results := make([]int64, len(forms))

	for i, form := range forms {
		g.Go(func() error {
			n, err := l.Load(ctx, form, urls[form])
			if err != nil {
				return err
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, form := range forms {
		counts[form] = results[i]
	}
	return counts, nil
}

// stage streams the extract and writes rows in COPY batches.
func (l *Loader) stage(ctx context.Context, form model.FormKind, cols extractColumns, file *os.File) (int64, error) {
	// The derived cancel unblocks the stream goroutine when staging
	// aborts before the extract is fully read.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rowCh, errCh := fetcher.StreamCSV(ctx, file, fetcher.CSVOptions{Latin1: true, LazyQuotes: true})

	var header map[string]int
	var total int64
	batch := make([]Row, 0, l.batchSize)

	flush := func() error {
		n, err := l.store.BulkInsert(ctx, batch)
		if err != nil {
			return err
		}
		total += n
		batch = batch[:0]
		return nil
	}

	for record := range rowCh {
		if header == nil {
			header = indexHeader(record)
			continue
		}

		batch = append(batch, Row{
			FormKind:     form,
			AckID:        field(record, header, cols.ackID),
			SponsorName:  field(record, header, cols.sponsor),
			City:         field(record, header, cols.city),
			State:        field(record, header, cols.state),
			EIN:          field(record, header, cols.ein),
			PlanName:     field(record, header, cols.plan),
			ReceivedDate: field(record, header, cols.received),
			Participants: field(record, header, cols.participants),
			TotalAssets:  field(record, header, cols.assets),
		})

		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := <-errCh; err != nil {
		return total, err
	}
	if err := flush(); err != nil {
		return total, err
	}

	l.log.Info("staged extract rows", zap.String("form", string(form)), zap.Int64("rows", total))
	return total, nil
}

// indexHeader maps uppercased header names to their column positions.
func indexHeader(record []string) map[string]int {
	idx := make(map[string]int, len(record))
	for i, name := range record {
		idx[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	return idx
}

// field returns the named column's value, or "" when the extract does
// not carry that column or the row is short.
func field(record []string, header map[string]int, name string) string {
	i, ok := header[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
