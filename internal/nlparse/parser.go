// Package nlparse translates free-text queries into the filter
// vocabulary consumed by the structured query engine.
//
// Matching is deterministic and table-driven: ordered pattern tables for
// entity phrases, relative date phrases, and privacy levels, so
// first-match-wins and dedup semantics stay auditable per table. No
// external calls, no state.
package nlparse

import (
	"regexp"
	"strings"
	"time"
)

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// ParsedQuery is the structured reading of a free-text query.
//
// EntityTypes and PrivacyLevels are nil when no pattern matched — nil
// means "no constraint", while an empty list means "constrain to
// nothing". The engine treats the two differently, so the distinction is
// preserved here.
type ParsedQuery struct {
	EntityTypes    []string   `json:"entity_types,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	PrivacyLevels  []string   `json:"privacy_levels,omitempty"`
	SearchText     string     `json:"search_text,omitempty"`
	IncludePrivate bool       `json:"include_private"`
}

// entityPatterns maps name phrases to entity types, in checking order.
// Each entity has one alternation covering its synonymous phrasings, so
// an entity type is added at most once no matter how many of its
// phrasings appear.
var entityPatterns = []struct {
	entity string
	re     *regexp.Regexp
}{
	{"work_session", regexp.MustCompile(`(?i)\bwork\s+sessions?\b|\btime\s+entr(?:y|ies)\b|\bhours?\s+worked\b|\bsessions?\b`)},
	{"meeting", regexp.MustCompile(`(?i)\bmeetings?\b|\bcalls?\b|\bstand-?ups?\b`)},
	{"person", regexp.MustCompile(`(?i)\bpeople\b|\bpersons?\b|\bcontacts?\b`)},
	{"project", regexp.MustCompile(`(?i)\bprojects?\b`)},
	{"client", regexp.MustCompile(`(?i)\bclients?\b|\bcustomers?\b`)},
	{"employer", regexp.MustCompile(`(?i)\bemployers?\b`)},
	{"reminder", regexp.MustCompile(`(?i)\breminders?\b`)},
	{"note", regexp.MustCompile(`(?i)\bnotes?\b`)},
	{"action_item", regexp.MustCompile(`(?i)\baction\s+items?\b|\btasks?\b|\bto-?dos?\b`)},
	{"bookmark", regexp.MustCompile(`(?i)\bbookmarks?\b|\bsaved\s+links?\b`)},
}

// datePhrases lists relative date phrases in checking order. The first
// phrase found in the text wins; multiple date phrases never combine.
var datePhrases = []struct {
	phrase  string
	re      *regexp.Regexp
	resolve func(now time.Time) (start, end time.Time)
}{
	{"today", regexp.MustCompile(`(?i)\btoday\b`), func(now time.Time) (time.Time, time.Time) {
		d := midnight(now)
		return d, d
	}},
	{"yesterday", regexp.MustCompile(`(?i)\byesterday\b`), func(now time.Time) (time.Time, time.Time) {
		d := midnight(now).AddDate(0, 0, -1)
		return d, d
	}},
	{"this week", regexp.MustCompile(`(?i)\bthis\s+week\b`), func(now time.Time) (time.Time, time.Time) {
		start := weekStart(now)
		return start, start.AddDate(0, 0, 6)
	}},
	{"last week", regexp.MustCompile(`(?i)\blast\s+week\b`), func(now time.Time) (time.Time, time.Time) {
		start := weekStart(now).AddDate(0, 0, -7)
		return start, start.AddDate(0, 0, 6)
	}},
	{"this month", regexp.MustCompile(`(?i)\bthis\s+month\b`), func(now time.Time) (time.Time, time.Time) {
		start := monthStart(now)
		return start, start.AddDate(0, 1, -1)
	}},
	{"last month", regexp.MustCompile(`(?i)\blast\s+month\b`), func(now time.Time) (time.Time, time.Time) {
		start := monthStart(now).AddDate(0, -1, 0)
		return start, start.AddDate(0, 1, -1)
	}},
	{"this year", regexp.MustCompile(`(?i)\bthis\s+year\b`), func(now time.Time) (time.Time, time.Time) {
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	}},
}

// privacyPatterns lists privacy levels in checking order. Unlike dates,
// every matching level is collected.
var privacyPatterns = []struct {
	level string
	re    *regexp.Regexp
}{
	{"public", regexp.MustCompile(`(?i)\bpublic\b`)},
	{"private", regexp.MustCompile(`(?i)\bprivate\b`)},
	{"confidential", regexp.MustCompile(`(?i)\bconfidential\b`)},
}

// commandVerbs are leading phrases stripped before residual text
// extraction, longest first so "show me" wins over "show".
var commandVerbs = regexp.MustCompile(`(?i)^\s*(show\s+me|how\s+many|search\s+for|search|find|get|list|what|show)\b[\s:]*`)

// fillerWords are leading connectives left behind once verbs and entity
// phrases are gone ("find notes about billing" -> "billing").
var fillerWords = regexp.MustCompile(`(?i)^\s*(about|regarding|concerning|related\s+to|mentioning|for|on)\b\s*`)

// Parse produces the structured reading of text. IncludePrivate is
// always true: this is a single-user deployment with no tenant access
// control.
func Parse(text string) ParsedQuery {
	now := timeNow()
	q := ParsedQuery{IncludePrivate: true}

	residual := []byte(text)

	for _, ep := range entityPatterns {
		matches := ep.re.FindAllIndex(residual, -1)
		if len(matches) == 0 {
			continue
		}
		q.EntityTypes = append(q.EntityTypes, ep.entity)
		blankMatches(residual, matches)
	}

	for _, dp := range datePhrases {
		matches := dp.re.FindAllIndex(residual, -1)
		if len(matches) == 0 {
			continue
		}
		// First phrase in table order wins; later matches are only
		// removed from the residual text.
		if q.StartDate == nil {
			start, end := dp.resolve(now)
			q.StartDate, q.EndDate = &start, &end
		}
		blankMatches(residual, matches)
	}

	for _, pp := range privacyPatterns {
		matches := pp.re.FindAllIndex(residual, -1)
		if len(matches) == 0 {
			continue
		}
		q.PrivacyLevels = append(q.PrivacyLevels, pp.level)
		blankMatches(residual, matches)
	}

	q.SearchText = residualText(string(residual))
	return q
}

// blankMatches overwrites matched spans with spaces, preserving offsets
// for the remaining tables.
func blankMatches(text []byte, matches [][]int) {
	for _, m := range matches {
		for i := m[0]; i < m[1]; i++ {
			text[i] = ' '
		}
	}
}

// residualText strips leading command verbs, collapses whitespace, and
// returns the leftover free text ("" when nothing remains).
func residualText(text string) string {
	for {
		stripped := commandVerbs.ReplaceAllString(text, "")
		stripped = fillerWords.ReplaceAllString(stripped, "")
		if stripped == text {
			break
		}
		text = stripped
	}
	return strings.Join(strings.Fields(text), " ")
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday of t's week.
func weekStart(t time.Time) time.Time {
	d := midnight(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
