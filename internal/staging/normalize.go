package staging

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/ple-import/internal/filing"
)

// receivedDateLayout is the date format used across all DOL extracts.
const receivedDateLayout = "01/02/2006"

// Normalize converts a raw staging row into a typed filing record. It
// is total: malformed fields become absent (nil) rather than errors,
// so one bad cell never blocks the rest of the row. Text fields are
// whitespace-trimmed; an EIN survives only when it is exactly nine
// digits after stripping separators.
func Normalize(row *Row) *filing.Record {
	return &filing.Record{
		AckID:        strings.TrimSpace(row.AckID),
		FormKind:     row.FormKind,
		SponsorName:  strings.TrimSpace(row.SponsorName),
		City:         strings.TrimSpace(row.City),
		State:        strings.ToUpper(strings.TrimSpace(row.State)),
		EIN:          normalizeEIN(row.EIN),
		PlanName:     strings.TrimSpace(row.PlanName),
		ReceivedDate: parseDate(row.ReceivedDate),
		Participants: parseCount(row.Participants),
		TotalAssets:  parseAmount(row.TotalAssets),
	}
}

// parseDate accepts MM/DD/YYYY and returns nil for anything else.
func parseDate(s string) *time.Time {
	t, err := time.Parse(receivedDateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}

// parseCount strips everything that is not a digit and parses what
// remains. Absent only when nothing numeric survives, so dirty cells
// like "250 EMPLOYEES" still yield their count.
func parseCount(s string) *int {
	digits := keep(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if digits == "" {
		return nil
	}
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
		if n < 0 {
			return nil
		}
	}
	return &n
}

// parseAmount strips currency symbols and separators, then parses the
// remainder as a decimal. Negative amounts appear in Schedule A
// extracts and are kept as-is.
func parseAmount(s string) *decimal.Decimal {
	cleaned := keep(s, func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '.' || r == '-'
	})
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}

// normalizeEIN returns the bare nine digits, or "" when the field does
// not hold a well-formed EIN. Partial identifiers are worse than none.
func normalizeEIN(s string) string {
	digits := keep(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if len(digits) != 9 {
		return ""
	}
	return digits
}

func keep(s string, pred func(rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if pred(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
