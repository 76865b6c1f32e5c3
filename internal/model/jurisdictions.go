package model

// jurisdictions is the fixed allow-list of two-letter codes accepted on
// companies and filings: the 50 states, DC, and the territories that
// appear in EFAST2 extracts.
var jurisdictions = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true,
	"CO": true, "CT": true, "DE": true, "FL": true, "GA": true,
	"HI": true, "ID": true, "IL": true, "IN": true, "IA": true,
	"KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true,
	"MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
	"SD": true, "TN": true, "TX": true, "UT": true, "VT": true,
	"VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
	"DC": true, "PR": true, "VI": true, "GU": true, "AS": true,
	"MP": true,
}

// ValidJurisdiction reports whether code is on the allow-list.
func ValidJurisdiction(code string) bool {
	return jurisdictions[code]
}
