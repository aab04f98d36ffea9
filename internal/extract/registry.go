package extract

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/gocarina/gocsv"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// IssuerPattern matches one known bill issuer. Pattern is an optional regex
// run against the whole text; Aliases are literal names matched
// case-insensitively anywhere in the text.
type IssuerPattern struct {
	Name    string
	Pattern *regexp.Regexp
	Aliases []string
}

// IssuerRegistry resolves raw bill text to a canonical issuer name. Regex
// patterns are tried in registration order; aliases are scanned in a single
// Aho-Corasick pass; a fuzzy pass over the header lines catches lightly
// mangled names.
type IssuerRegistry struct {
	patterns   []IssuerPattern
	matcher    *ahocorasick.Matcher
	aliasOwner []int // alias index -> pattern index
}

// NewIssuerRegistry builds a registry from the given patterns.
func NewIssuerRegistry(patterns []IssuerPattern) *IssuerRegistry {
	r := &IssuerRegistry{patterns: patterns}
	r.rebuild()
	return r
}

// DefaultRegistry returns the built-in known-issuer registry.
func DefaultRegistry() *IssuerRegistry {
	return NewIssuerRegistry([]IssuerPattern{
		{Name: "ConEdison", Pattern: regexp.MustCompile(`(?i)consolidated\s+edison|con\s*ed\b`), Aliases: []string{"CONSOLIDATED EDISON", "CON EDISON"}},
		{Name: "National Grid", Pattern: regexp.MustCompile(`(?i)national\s+grid`), Aliases: []string{"NATIONAL GRID"}},
		{Name: "Bank of America", Pattern: regexp.MustCompile(`(?i)bank\s+of\s+america|\bbofa\b`), Aliases: []string{"BANK OF AMERICA"}},
		{Name: "Verizon", Pattern: regexp.MustCompile(`(?i)verizon`), Aliases: []string{"VERIZON WIRELESS"}},
		{Name: "AT&T", Pattern: regexp.MustCompile(`(?i)at&t`), Aliases: []string{"AT&T MOBILITY"}},
		{Name: "Comcast", Pattern: regexp.MustCompile(`(?i)comcast|xfinity`), Aliases: []string{"COMCAST", "XFINITY"}},
		{Name: "Spectrum", Pattern: regexp.MustCompile(`(?i)\bspectrum\b|charter\s+communications`), Aliases: []string{"CHARTER COMMUNICATIONS"}},
		{Name: "T-Mobile", Pattern: regexp.MustCompile(`(?i)t-?mobile`), Aliases: []string{"T-MOBILE"}},
		{Name: "Duke Energy", Pattern: regexp.MustCompile(`(?i)duke\s+energy`), Aliases: []string{"DUKE ENERGY"}},
		{Name: "PG&E", Pattern: regexp.MustCompile(`(?i)pacific\s+gas\s+and\s+electric|pg&e`), Aliases: []string{"PACIFIC GAS AND ELECTRIC"}},
		{Name: "American Express", Pattern: regexp.MustCompile(`(?i)american\s+express|\bamex\b`), Aliases: []string{"AMERICAN EXPRESS"}},
		{Name: "Chase", Pattern: regexp.MustCompile(`(?i)jpmorgan\s+chase|chase\s+card\s+services`), Aliases: []string{"JPMORGAN CHASE"}},
	})
}

// Add registers a custom issuer pattern.
func (r *IssuerRegistry) Add(p IssuerPattern) {
	r.patterns = append(r.patterns, p)
	r.rebuild()
}

func (r *IssuerRegistry) rebuild() {
	var aliases []string
	r.aliasOwner = r.aliasOwner[:0]
	for i, p := range r.patterns {
		for _, a := range p.Aliases {
			aliases = append(aliases, strings.ToUpper(a))
			r.aliasOwner = append(r.aliasOwner, i)
		}
	}
	if len(aliases) == 0 {
		r.matcher = nil
		return
	}
	r.matcher = ahocorasick.NewStringMatcher(aliases)
}

// Match resolves text to a canonical issuer name. Regex patterns win over
// alias hits; among alias hits the earliest-registered issuer wins.
func (r *IssuerRegistry) Match(text string) (string, bool) {
	for _, p := range r.patterns {
		if p.Pattern != nil && p.Pattern.MatchString(text) {
			return p.Name, true
		}
	}

	if r.matcher != nil {
		hits := r.matcher.Match([]byte(strings.ToUpper(text)))
		if len(hits) > 0 {
			best := hits[0]
			for _, h := range hits[1:] {
				if h < best {
					best = h
				}
			}
			return r.patterns[r.aliasOwner[best]].Name, true
		}
	}

	return "", false
}

// fuzzyMaxLines bounds the fuzzy pass to the document header, where the
// issuer name appears on real bills.
const fuzzyMaxLines = 8

// FuzzyMatch compares candidate header lines against canonical issuer names
// using Levenshtein distance over normalized strings. It catches spaced-out
// or decorated variants ("C o n E d i s o n") that the literal passes miss.
func (r *IssuerRegistry) FuzzyMatch(lines []string) (string, bool) {
	bestDistance := -1
	bestName := ""

	for i, line := range lines {
		if i >= fuzzyMaxLines {
			break
		}
		normLine := normalizeFuzzy(line)
		if normLine == "" {
			continue
		}
		for _, p := range r.patterns {
			normName := normalizeFuzzy(p.Name)
			if !fuzzy.MatchFold(normName, normLine) {
				continue
			}
			d := fuzzy.LevenshteinDistance(normName, normLine)
			if d > len(normName)/2 {
				continue
			}
			if bestDistance < 0 || d < bestDistance {
				bestDistance = d
				bestName = p.Name
			}
		}
	}

	return bestName, bestDistance >= 0
}

// normalizeFuzzy lowercases and strips everything but letters and digits.
func normalizeFuzzy(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// issuerRow is the CSV row shape of a user-supplied issuer registry.
// Aliases are pipe-separated inside one cell.
type issuerRow struct {
	Name    string `csv:"name"`
	Pattern string `csv:"pattern"`
	Aliases string `csv:"aliases"`
}

// LoadCSV merges issuer definitions from reader into the registry. Rows with
// an invalid regex or a missing name are reported and skipped; the rest are
// registered. Patterns are compiled case-insensitively.
func (r *IssuerRegistry) LoadCSV(reader io.Reader) []error {
	var rows []issuerRow
	if err := gocsv.Unmarshal(reader, &rows); err != nil {
		return []error{fmt.Errorf("parse issuer registry: %w", err)}
	}

	var errs []error
	added := false
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("issuer registry row %d: missing name", i+2))
			continue
		}

		p := IssuerPattern{Name: name}
		if s := strings.TrimSpace(row.Pattern); s != "" {
			re, err := regexp.Compile("(?i)" + s)
			if err != nil {
				errs = append(errs, fmt.Errorf("issuer registry row %d (%s): %w", i+2, name, err))
				continue
			}
			p.Pattern = re
		}
		for _, a := range strings.Split(row.Aliases, "|") {
			if a = strings.TrimSpace(a); a != "" {
				p.Aliases = append(p.Aliases, a)
			}
		}
		if p.Pattern == nil && len(p.Aliases) == 0 {
			p.Aliases = []string{name}
		}

		r.patterns = append(r.patterns, p)
		added = true
	}
	if added {
		r.rebuild()
	}
	return errs
}
