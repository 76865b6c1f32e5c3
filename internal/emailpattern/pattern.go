// Package emailpattern infers and renders company-level email address
// templates from observed (person name, address) pairs.
//
// A pattern is a template over the tokens {first}, {last}, {f}
// (first initial) and {l} (last initial), joined by literal separators
// and always terminated by "@", e.g. "{f}{last}@" for jsmith@acme.com.
// Patterns belong to a company, not to any person: one verified address
// is enough to render candidate addresses for every other employee.
package emailpattern

import "strings"

// Patterns is the fixed, ordered template list tried by Detect.
// Two-part templates come before single-token ones so that
// "john.smith" is classified as "{first}.{last}@" rather than a
// coincidental "{first}@" hit. The order is load-bearing.
var Patterns = []string{
	"{first}.{last}@",
	"{first}{last}@",
	"{f}{last}@",
	"{first}{l}@",
	"{f}.{last}@",
	"{first}_{last}@",
	"{last}.{first}@",
	"{last}{f}@",
	"{first}@",
	"{last}@",
}

// Detect infers the pattern behind a concrete address. It returns the
// first template (in Patterns order) whose rendering with the given
// name reproduces the address's local part, and false when the address
// follows no known convention. An unknown convention is a normal
// outcome, not an error.
//
// The domain part of the address is ignored; callers capture it
// separately when they want to render future addresses.
func Detect(email, firstName, lastName string) (string, bool) {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "", false
	}
	local = strings.ToLower(strings.TrimSpace(local))

	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))
	if first == "" || last == "" {
		return "", false
	}

	for _, p := range Patterns {
		if expand(p, first, last) == local {
			return p, true
		}
	}
	return "", false
}

// Render substitutes a person's name into a pattern and appends the
// domain. It is total: any pattern string renders for any non-empty
// name pair. The result is a candidate for downstream verification,
// not a certified deliverable address.
func Render(firstName, lastName, pattern, domain string) string {
	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))
	return expand(pattern, first, last) + "@" + domain
}

// expand renders the local part of a pattern for an already-folded
// name pair. The trailing "@" marker is dropped.
func expand(pattern, first, last string) string {
	local := strings.TrimSuffix(pattern, "@")
	// {first}/{last} are listed before {f}/{l} so the longer tokens win.
	r := strings.NewReplacer(
		"{first}", first,
		"{last}", last,
		"{f}", initial(first),
		"{l}", initial(last),
	)
	return r.Replace(local)
}

func initial(s string) string {
	if s == "" {
		return ""
	}
	return s[:1]
}
