package staging

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/ple-import/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// zipFetcher writes a fixed ZIP archive instead of downloading.
type zipFetcher struct {
	entryName string
	content   string
}

func (f *zipFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	panic("not used by the loader")
}

func (f *zipFetcher) DownloadToFile(ctx context.Context, url, path string) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	w := zip.NewWriter(file)
	entry, err := w.Create(f.entryName)
	if err != nil {
		return 0, err
	}
	if _, err := entry.Write([]byte(f.content)); err != nil {
		return 0, err
	}
	return int64(len(f.content)), w.Close()
}

// memStore records bulk inserts in memory. Guarded because LoadAll
// stages forms concurrently.
type memStore struct {
	mu   sync.Mutex
	rows []Row
}

func (s *memStore) BulkInsert(ctx context.Context, rows []Row) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
	return int64(len(rows)), nil
}

func (s *memStore) List(ctx context.Context, form model.FormKind) ([]Row, error) {
	return s.rows, nil
}

func (s *memStore) Count(ctx context.Context, form model.FormKind) (int, error) {
	return len(s.rows), nil
}

func (s *memStore) Clear(ctx context.Context, form model.FormKind) (int64, error) {
	n := int64(len(s.rows))
	s.rows = nil
	return n, nil
}

const extract5500 = `ACK_ID,SPONSOR_DFE_NAME,SPONS_DFE_MAIL_US_CITY,SPONS_DFE_MAIL_US_STATE,SPONS_DFE_EIN,PLAN_NAME,DATE_RECEIVED,TOT_PARTCP_BOY_CNT,TOT_ASSETS_EOY_AMT
ACK001,Acme Corp,Columbus,OH,12-3456789,Acme 401(k),03/15/2024,250,1500000.00
ACK002,Beta LLC,Austin,TX,,,,,
`

func TestLoader_Load(t *testing.T) {
	fetch := &zipFetcher{entryName: "f_5500_2023_latest.csv", content: extract5500}
	store := &memStore{}

	loader := NewLoader(fetch, store, 1)

	n, err := loader.Load(context.Background(), model.Form5500, "https://askebsa.dol.gov/extract.zip")

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.Len(t, store.rows, 2)

	first := store.rows[0]
	assert.Equal(t, model.Form5500, first.FormKind)
	assert.Equal(t, "ACK001", first.AckID)
	assert.Equal(t, "Acme Corp", first.SponsorName)
	assert.Equal(t, "12-3456789", first.EIN)
	assert.Equal(t, "03/15/2024", first.ReceivedDate)
	assert.Equal(t, "1500000.00", first.TotalAssets)

	// Missing cells stage as empty strings, never as load failures.
	second := store.rows[1]
	assert.Equal(t, "ACK002", second.AckID)
	assert.Empty(t, second.EIN)
	assert.Empty(t, second.Participants)
}

func TestLoader_Load_UnknownForm(t *testing.T) {
	loader := NewLoader(&zipFetcher{}, &memStore{}, 0)

	_, err := loader.Load(context.Background(), model.FormKind("bogus"), "https://example.com/x.zip")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no column mapping")
}

// failStore rejects every bulk insert.
type failStore struct {
	memStore
}

func (s *failStore) BulkInsert(ctx context.Context, rows []Row) (int64, error) {
	return 0, errors.New("copy rejected")
}

func TestLoader_Load_StoreErrorAbortsMidStream(t *testing.T) {
	// Far more rows than the stream buffer holds, so the abort must
	// release the producer rather than wait for it.
	var content strings.Builder
	content.WriteString("ACK_ID,SPONSOR_DFE_NAME\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&content, "ACK%04d,Acme Corp\n", i)
	}

	fetch := &zipFetcher{entryName: "big.csv", content: content.String()}
	loader := NewLoader(fetch, &failStore{}, 1)

	_, err := loader.Load(context.Background(), model.Form5500, "https://askebsa.dol.gov/extract.zip")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy rejected")
}

func TestLoader_LoadAll(t *testing.T) {
	fetch := &zipFetcher{entryName: "extract.csv", content: extract5500}
	store := &memStore{}

	loader := NewLoader(fetch, store, 0)

	counts, err := loader.LoadAll(context.Background(), map[model.FormKind]string{
		model.Form5500:   "https://askebsa.dol.gov/5500.zip",
		model.Form5500SF: "https://askebsa.dol.gov/5500sf.zip",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[model.Form5500])
	// The SF mapping finds none of its headers in the 5500 fixture, so
	// its rows stage with empty fields but still count.
	assert.Equal(t, int64(2), counts[model.Form5500SF])
}
