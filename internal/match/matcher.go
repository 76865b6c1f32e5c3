// Package match resolves filing sponsors against the company hub.
package match

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/ple-import/internal/company"
	"github.com/sells-group/ple-import/internal/model"
)

// Kind labels how a sponsor resolved.
type Kind string

const (
	// Exact means the sponsor name matched a company name verbatim
	// (case-insensitive) within the same state.
	Exact Kind = "exact"
	// Fuzzy means the names matched by containment within the same
	// city and state.
	Fuzzy Kind = "fuzzy"
)

// Match is a resolved sponsor.
type Match struct {
	Company *model.Company
	Kind    Kind
}

// Matcher resolves sponsor names through a two-stage lookup. Exact
// matching runs first; the looser containment stage only runs when
// exact finds nothing, so a precise hit can never be shadowed by a
// sloppier one.
type Matcher struct {
	store company.Store
	log   *zap.Logger
}

// New creates a Matcher backed by the given company store.
func New(store company.Store) *Matcher {
	return &Matcher{
		store: store,
		log:   zap.L().With(zap.String("component", "match")),
	}
}

// Resolve finds the company for a sponsor. A nil Match with nil error
// means no company qualified; the caller decides what an unmatched
// sponsor costs.
func (m *Matcher) Resolve(ctx context.Context, sponsorName, city, state string) (*Match, error) {
	if sponsorName == "" || state == "" {
		return nil, nil
	}

	c, err := m.store.FindExactName(ctx, sponsorName, state)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return &Match{Company: c, Kind: Exact}, nil
	}

	// Containment needs the city to hold the false-positive rate down;
	// without one the fuzzy stage is skipped entirely.
	if city == "" {
		return nil, nil
	}

	c, err = m.store.FindFuzzy(ctx, sponsorName, city, state)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	m.log.Debug("fuzzy sponsor match",
		zap.String("sponsor", sponsorName),
		zap.String("company", c.Name),
	)
	return &Match{Company: c, Kind: Fuzzy}, nil
}
