package core

// weight.go extracts weight ranges from the free-text remark column.
//
// The remarks are written by hand in French and come in two shapes:
//   - a bounded range: "1-24 grammes", "6 001 - 12 000 grammes"
//   - a lower bound:   "plus des 6'001 grammes"
//
// Thousands are separated by an apostrophe (Swiss style) or a space. The
// typographic variants (no-break spaces, right single quote) are folded to
// their ASCII form before matching, since \s and ' only cover ASCII.

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// weightMatcher is one candidate pattern. The first matcher whose pattern
// matches decides the result.
type weightMatcher struct {
	name    string
	pattern *regexp.Regexp
	build   func(groups []string) (WeightRange, bool)
}

var weightSeparators = strings.NewReplacer(
	"\u00a0", " ",
	"\u202f", " ",
	"\u2019", "'",
)

// weightMatchers are tried in order.
var weightMatchers = []weightMatcher{
	{
		name:    "range",
		pattern: regexp.MustCompile(`(\d+['\s]?\d*)\s*-\s*(\d+['\s]?\d*)`),
		build: func(groups []string) (WeightRange, bool) {
			lo, ok := parseWeightNumber(groups[1])
			if !ok {
				return WeightRange{}, false
			}
			hi, ok := parseWeightNumber(groups[2])
			if !ok || lo > hi {
				return WeightRange{}, false
			}
			return WeightRange{Min: lo, Max: hi}, true
		},
	},
	{
		// Requires two digits at least, so a stray "5" in a remark is not
		// read as a weight.
		name:    "lower_bound",
		pattern: regexp.MustCompile(`(\d+['\s]?\d+)`),
		build: func(groups []string) (WeightRange, bool) {
			n, ok := parseWeightNumber(groups[1])
			if !ok {
				return WeightRange{}, false
			}
			return WeightRange{Min: n, Max: OpenEndedWeight}, true
		},
	},
}

// ParseWeightRange extracts a weight range in grams from a remark.
// Returns false when the remark is empty or carries no usable number.
func ParseWeightRange(remark string) (WeightRange, bool) {
	if strings.TrimSpace(remark) == "" {
		return WeightRange{}, false
	}
	remark = weightSeparators.Replace(remark)

	for _, m := range weightMatchers {
		groups := m.pattern.FindStringSubmatch(remark)
		if groups == nil {
			continue
		}
		return m.build(groups)
	}

	return WeightRange{}, false
}

// parseWeightNumber strips thousands separators and a trailing unit word
// ("24grammes") before converting.
func parseWeightNumber(s string) (int, bool) {
	s = strings.Map(func(r rune) rune {
		if r == '\'' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimRightFunc(s, unicode.IsLetter)
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
