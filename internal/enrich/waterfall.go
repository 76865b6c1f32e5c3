package enrich

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/ple-import/internal/model"
)

// Tier orders enrichment providers by cost. Cheaper tiers run first;
// a company only escalates when the cheaper tier left gaps.
type Tier string

const (
	// TierFree covers signals derived from data already on hand,
	// such as filings and detected email patterns.
	TierFree Tier = "free"
	// TierCheap covers bulk lookup providers billed per thousand.
	TierCheap Tier = "cheap"
	// TierPremium covers per-record human-verified providers.
	TierPremium Tier = "premium"
)

// ErrProviderNotConfigured is returned while the paid provider
// integrations are not wired up.
var ErrProviderNotConfigured = eris.New("enrich: no provider configured for tier")

// Waterfall escalates a company through provider tiers until its
// score stops improving or the per-company budget is spent.
//
// TODO: wire the cheap-tier bulk provider once procurement settles on
// a vendor; only the free tier runs today.
type Waterfall struct {
	calc *Calculator
}

// NewWaterfall creates a Waterfall over the given calculator.
func NewWaterfall(calc *Calculator) *Waterfall {
	return &Waterfall{calc: calc}
}

// Enrich runs the free tier (a recomputed score) and reports the
// result. Paid tiers return ErrProviderNotConfigured.
func (w *Waterfall) Enrich(ctx context.Context, c *model.Company, tier Tier) (int, error) {
	switch tier {
	case TierFree:
		return w.calc.ScoreCompany(ctx, c.ID)
	case TierCheap, TierPremium:
		return 0, eris.Wrapf(ErrProviderNotConfigured, "tier %s", tier)
	default:
		return 0, eris.Errorf("enrich: unknown tier %q", tier)
	}
}
