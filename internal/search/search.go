// Package search filters the full ledger by free text, phone numbers and
// person-to-person transfers. Matchers never aggregate: they return the
// matching records unchanged and in input order.
package search

import (
	"regexp"
	"strings"

	"cardledger/internal/core"
)

// Wildcard matches every record.
const Wildcard = "*"

var (
	// +7 or 8 followed by a ten digit mobile number, with the usual
	// separators: +7 921 111-22-33, 8 (921) 111 22 33, +79211112233.
	phonePattern = regexp.MustCompile(`(?:\+7|\b8)[\s-]?\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{2}[\s-]?\d{2}\b`)

	// A capitalized name followed by a capital initial: "Анастасия Л.".
	transferPattern = regexp.MustCompile(`\p{Lu}\p{Ll}+\s\p{Lu}\.`)
)

// Search returns the records whose description or category contains query,
// ignoring case. An empty query or Wildcard returns every record.
func Search(records []core.Record, query string) []core.Record {
	query = strings.TrimSpace(query)
	if query == "" || query == Wildcard {
		return filter(records, func(core.Record) bool { return true })
	}
	needle := strings.ToLower(query)
	return filter(records, func(r core.Record) bool {
		return strings.Contains(strings.ToLower(r.Description), needle) ||
			strings.Contains(strings.ToLower(r.Category), needle)
	})
}

// ByPhone returns the records whose description carries a mobile number.
func ByPhone(records []core.Record) []core.Record {
	return filter(records, func(r core.Record) bool {
		return phonePattern.MatchString(r.Description)
	})
}

// ByTransfers returns the records that look like transfers to a person.
func ByTransfers(records []core.Record) []core.Record {
	return filter(records, func(r core.Record) bool {
		return transferPattern.MatchString(r.Description)
	})
}

func filter(records []core.Record, keep func(core.Record) bool) []core.Record {
	out := make([]core.Record, 0)
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
