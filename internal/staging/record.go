// Package staging holds raw DOL extract rows between download and
// promotion. Everything in staging is text exactly as the extract
// shipped it; typing happens in Normalize, never at load time.
package staging

import "github.com/sells-group/ple-import/internal/model"

// Row is one raw extract line. All fields are unparsed strings so a
// malformed extract can never fail a load.
type Row struct {
	ID           int64          `db:"id"`
	FormKind     model.FormKind `db:"form_kind"`
	AckID        string         `db:"ack_id"`
	SponsorName  string         `db:"sponsor_name"`
	City         string         `db:"city"`
	State        string         `db:"state"`
	EIN          string         `db:"ein"`
	PlanName     string         `db:"plan_name"`
	ReceivedDate string         `db:"received_date"`
	Participants string         `db:"participants"`
	TotalAssets  string         `db:"total_assets"`
}
