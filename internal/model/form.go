package model

import "github.com/rotisserie/eris"

// FormKind identifies which DOL filing form a staging row or filing
// record came from. All three flow through the same promotion pipeline.
type FormKind string

const (
	Form5500   FormKind = "form5500"
	Form5500SF FormKind = "form5500sf"
	ScheduleA  FormKind = "schedule_a"
)

// Forms lists every supported form kind in import order.
var Forms = []FormKind{Form5500, Form5500SF, ScheduleA}

// ParseFormKind converts a CLI/config string into a FormKind.
func ParseFormKind(s string) (FormKind, error) {
	switch FormKind(s) {
	case Form5500, Form5500SF, ScheduleA:
		return FormKind(s), nil
	default:
		return "", eris.Errorf("unknown form %q (valid: form5500, form5500sf, schedule_a)", s)
	}
}
