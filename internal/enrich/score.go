// Package enrich scores how complete a company's golden record is.
// The score drives outreach prioritization: a fully enriched company
// is ready for a campaign, a sparse one still needs data.
package enrich

import (
	"context"
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/ple-import/internal/company"
	"github.com/sells-group/ple-import/internal/filing"
	"github.com/sells-group/ple-import/internal/model"
)

//go:embed weights.yaml
var weightsYAML []byte

// Weights assigns points to each enrichment signal. PerSlot points
// accrue per filled slot up to MaxSlots.
type Weights struct {
	EIN          int `yaml:"ein"`
	EmailPattern int `yaml:"email_pattern"`
	LinkedIn     int `yaml:"linkedin"`
	Domain       int `yaml:"domain"`
	Filing       int `yaml:"filing"`
	PerSlot      int `yaml:"per_slot"`
	MaxSlots     int `yaml:"max_slots"`
}

// DefaultWeights returns the weights embedded in the binary.
func DefaultWeights() Weights {
	var w Weights
	if err := yaml.Unmarshal(weightsYAML, &w); err != nil {
		// The embedded file is compiled in; failing to parse it is a
		// build defect, not a runtime condition.
		panic(eris.Wrap(err, "enrich: parse embedded weights"))
	}
	return w
}

// Score computes the 0-100 enrichment score for a company given its
// filing presence and filled slot count. It is pure; all lookups
// happen in the caller.
func Score(w Weights, c *model.Company, hasFiling bool, filledSlots int) int {
	score := 0
	if c.HasEIN() {
		score += w.EIN
	}
	if c.EmailPattern != "" {
		score += w.EmailPattern
	}
	if c.LinkedInURL != "" {
		score += w.LinkedIn
	}
	if c.Domain != "" {
		score += w.Domain
	}
	if hasFiling {
		score += w.Filing
	}
	if filledSlots > w.MaxSlots {
		filledSlots = w.MaxSlots
	}
	score += filledSlots * w.PerSlot
	return score
}

// Calculator scores companies against the stores.
type Calculator struct {
	weights   Weights
	companies company.Store
	filings   filing.Store
}

// NewCalculator creates a Calculator with the embedded default weights.
func NewCalculator(companies company.Store, filings filing.Store) *Calculator {
	return &Calculator{
		weights:   DefaultWeights(),
		companies: companies,
		filings:   filings,
	}
}

// ScoreCompany fetches a company's signals and computes its score.
func (calc *Calculator) ScoreCompany(ctx context.Context, id string) (int, error) {
	c, err := calc.companies.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, eris.Errorf("enrich: company %s not found", id)
	}

	hasFiling, err := calc.filings.HasFiling(ctx, id)
	if err != nil {
		return 0, err
	}

	filled, err := calc.companies.CountFilledSlots(ctx, id)
	if err != nil {
		return 0, err
	}

	return Score(calc.weights, c, hasFiling, filled), nil
}
