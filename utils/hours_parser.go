package utils

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/martinvega/visa462-tracker/dto"
)

// hourToken matches a plausible worked-hours figure: 1-3 integer digits with
// an optional 1-2 digit decimal part, comma or dot separated.
const hourToken = `\d{1,3}(?:[.,]\d{1,2})?`

var tokenRegex = regexp.MustCompile(`\b` + hourToken + `\b`)

// anchorStrategy locates hour values in a known payslip layout: a literal
// marker phrase followed by a numeric token that appears before the next
// currency symbol, possibly across line breaks (rates and amounts carry a
// leading $, worked units do not).
type anchorStrategy struct {
	name    string
	pattern *regexp.Regexp
}

func anchorPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + marker + `[^$]{0,120}?\b(` + hourToken + `)\s*\$`)
}

// Ordered by how often each layout shows up. New payslip formats are added by
// appending a strategy, never by widening an existing pattern.
var anchorStrategies = []anchorStrategy{
	{"normal-time", anchorPattern(`Normal\s+Time`)},
	{"base-hourly", anchorPattern(`Base\s+Hourly`)},
	{"ordinary-hours", anchorPattern(`Ordinary\s+Hours`)},
	{"total-hours-worked", anchorPattern(`Total\s+Hours\s+Worked`)},
}

// hourKeywords marks lines worth scanning in the proximity pass.
var hourKeywords = []string{
	"hour", "hrs", "time", "worked", "normal", "overtime",
	"shift", "unit", "w/e", "week ending",
}

const (
	keywordMin = 0.5
	keywordMax = 100.0 // exclusive
	sweepMin   = 0.5
	sweepMax   = 200.0 // inclusive
	sweepCap   = 15
)

// ExtractCandidateHours scans pre-extracted payslip text for plausible
// worked-hours values. Anchored strategies run first, then the
// keyword-proximity pass adds to the same pool; the generic sweep runs only
// when both found nothing. Candidates are deduplicated by value (first
// context wins) and sorted by value descending. An empty result is a normal
// outcome and signals manual entry.
//
// Not quite pure: the year guard in the keyword pass reads the current date.
func ExtractCandidateHours(text string) []dto.CandidateHours {
	seen := make(map[float64]bool)
	var pool []dto.CandidateHours

	add := func(c dto.CandidateHours) {
		if seen[c.Value] {
			return
		}
		seen[c.Value] = true
		pool = append(pool, c)
	}

	for _, c := range anchorCandidates(text) {
		add(c)
	}
	for _, c := range keywordCandidates(text, time.Now().Year()) {
		add(c)
	}

	if len(pool) == 0 {
		for _, c := range sweepCandidates(text) {
			add(c)
		}
		sortByValueDesc(pool)
		if len(pool) > sweepCap {
			pool = pool[:sweepCap]
		}
		return pool
	}

	sortByValueDesc(pool)
	return pool
}

// anchorCandidates runs every anchored strategy over the full text. A
// strategy may match many lines; each match contributes one candidate tagged
// with its source line.
func anchorCandidates(text string) []dto.CandidateHours {
	var out []dto.CandidateHours
	for _, s := range anchorStrategies {
		for _, m := range s.pattern.FindAllStringSubmatchIndex(text, -1) {
			raw := text[m[2]:m[3]]
			value, ok := parseHourToken(raw)
			if !ok {
				continue
			}
			line := 1 + strings.Count(text[:m[2]], "\n")
			out = append(out, dto.CandidateHours{
				Value:   value,
				Context: lineAt(text, m[2]),
				Line:    line,
			})
		}
	}
	return out
}

// keywordCandidates scans every line mentioning an hours-related term and
// collects numeric tokens in the plausible range. Tokens directly preceded
// by a currency symbol are money, not hours. Bare integers equal to the
// current or previous calendar year are rejected; the 3-digit token pattern
// cannot produce one today, so this only matters if the pattern is ever
// widened.
func keywordCandidates(text string, currentYear int) []dto.CandidateHours {
	var out []dto.CandidateHours
	for i, line := range strings.Split(text, "\n") {
		if !containsHourKeyword(line) {
			continue
		}
		for _, loc := range tokenRegex.FindAllStringIndex(line, -1) {
			if loc[0] > 0 && line[loc[0]-1] == '$' {
				continue
			}
			raw := line[loc[0]:loc[1]]
			value, ok := parseHourToken(raw)
			if !ok {
				continue
			}
			if value < keywordMin || value >= keywordMax {
				continue
			}
			if isYearLookalike(raw, value, currentYear) {
				continue
			}
			out = append(out, dto.CandidateHours{
				Value:   value,
				Context: strings.TrimSpace(line),
				Line:    i + 1,
			})
		}
	}
	return out
}

// sweepCandidates is the last resort: every non-currency numeric token in
// the whole text, widened to the [0.5, 200] band.
func sweepCandidates(text string) []dto.CandidateHours {
	var out []dto.CandidateHours
	for _, loc := range tokenRegex.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == '$' {
			continue
		}
		value, ok := parseHourToken(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		if value < sweepMin || value > sweepMax {
			continue
		}
		out = append(out, dto.CandidateHours{
			Value:   value,
			Context: lineAt(text, loc[0]),
			Line:    1 + strings.Count(text[:loc[0]], "\n"),
		})
	}
	return out
}

func containsHourKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range hourKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func parseHourToken(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isYearLookalike(raw string, value float64, currentYear int) bool {
	if strings.ContainsAny(raw, ".,") || len(raw) != 4 {
		return false
	}
	y := int(value)
	return y == currentYear || y == currentYear-1
}

// lineAt returns the trimmed text of the line containing byte offset pos.
func lineAt(text string, pos int) string {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += pos
	}
	return strings.TrimSpace(text[start:end])
}

// sortByValueDesc orders candidates by value descending. The sort is stable
// so equal values keep first-seen order, though dedup makes ties impossible
// in practice.
func sortByValueDesc(cs []dto.CandidateHours) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Value > cs[j].Value
	})
}
