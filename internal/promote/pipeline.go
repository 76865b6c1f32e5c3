// Package promote moves staged extract rows into typed filing records
// linked to companies.
package promote

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ple-import/internal/company"
	"github.com/sells-group/ple-import/internal/filing"
	"github.com/sells-group/ple-import/internal/match"
	"github.com/sells-group/ple-import/internal/model"
	"github.com/sells-group/ple-import/internal/staging"
)

// Pipeline promotes one form's staged rows. Per row: normalize the
// raw text, resolve the sponsor, insert the filing keyed on AckID,
// and backfill the company's EIN when it has none. Staging is cleared
// only after every row has been seen.
type Pipeline struct {
	staging   staging.Store
	matcher   *match.Matcher
	companies company.Store
	filings   filing.Store
	log       *zap.Logger
}

// New creates a Pipeline.
func New(st staging.Store, matcher *match.Matcher, companies company.Store, filings filing.Store) *Pipeline {
	return &Pipeline{
		staging:   st,
		matcher:   matcher,
		companies: companies,
		filings:   filings,
		log:       zap.L().With(zap.String("component", "promote")),
	}
}

// Run promotes all staged rows of one form kind. Store failures abort
// the run; staging is left intact so the run can simply be repeated.
// AckID-keyed inserts make the repeat safe.
func (p *Pipeline) Run(ctx context.Context, form model.FormKind) (*Summary, error) {
	rows, err := p.staging.List(ctx, form)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Form: form}
	for i := range rows {
		if err := p.promoteRow(ctx, &rows[i], summary); err != nil {
			return nil, eris.Wrapf(err, "promote: row %d of %s", rows[i].ID, form)
		}
	}

	cleared, err := p.staging.Clear(ctx, form)
	if err != nil {
		return nil, err
	}
	summary.Cleared = cleared

	p.log.Info("promotion complete",
		zap.String("form", string(form)),
		zap.Int("processed", summary.Processed),
		zap.Int("matched", summary.Matched),
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("eins_backfilled", summary.EINsBackfilled),
	)
	return summary, nil
}

func (p *Pipeline) promoteRow(ctx context.Context, row *staging.Row, summary *Summary) error {
	summary.Processed++

	rec := staging.Normalize(row)
	if rec.AckID == "" {
		// Without an acknowledgment ID the row has no idempotency key
		// and can never be promoted safely.
		summary.Skipped++
		p.log.Warn("staged row has no ack id", zap.Int64("row", row.ID))
		return nil
	}

	m, err := p.matcher.Resolve(ctx, rec.SponsorName, rec.City, rec.State)
	if err != nil {
		return err
	}
	if m != nil {
		summary.Matched++
		rec.CompanyID = &m.Company.ID
	}

	outcome, err := p.filings.Insert(ctx, rec)
	if err != nil {
		return err
	}
	if outcome == filing.SkippedDuplicate {
		summary.Skipped++
	} else {
		summary.Inserted++
	}

	// Backfill depends only on the match, not the insert outcome: a
	// duplicate filing can still carry an identifier the company
	// lacks. The store keeps any EIN already on record, so concurrent
	// promotions cannot clobber each other.
	if m != nil && rec.EIN != "" && !m.Company.HasEIN() {
		wrote, err := p.companies.BackfillEIN(ctx, m.Company.ID, rec.EIN)
		if err != nil {
			return err
		}
		if wrote {
			summary.EINsBackfilled++
		}
	}
	return nil
}
