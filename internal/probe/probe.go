// Package probe samples the first lines of an NDJSON file and reports, per
// top-level field, a normalized column name, an inferred SQL-ish type, null
// and presence counts, and a distinct-value estimate. It exists to sanity
// check a dump (and the schema assumptions baked into the loader) before
// committing to a multi-hour load.
package probe

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode"

	json "github.com/goccy/go-json"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FieldStat summarizes one top-level JSON field across the sampled lines.
type FieldStat struct {
	// Name is the original JSON key; NormName is its normalized column form.
	Name     string `json:"name"`
	NormName string `json:"norm_name"`

	// Type is the inferred type: string, date, integer, float, bool, array,
	// object, or null when the field was never non-null.
	Type string `json:"type"`

	// Present counts lines carrying the key; Nulls counts explicit nulls.
	Present int `json:"present"`
	Nulls   int `json:"nulls"`

	// Distinct estimates the number of distinct non-null values seen,
	// counted via 64-bit hashes of the rendered value.
	Distinct int `json:"distinct"`

	// Sample is the first non-null value seen, trimmed for display.
	Sample string `json:"sample,omitempty"`
}

// maxLineBytes mirrors the reader's per-line bound.
const maxLineBytes = 16 << 20

// Sample reads up to maxLines NDJSON lines from r and returns per-field
// statistics sorted by field name, plus the number of lines examined.
// Malformed lines are skipped: the probe is a diagnostic, not a validator.
func Sample(r io.Reader, maxLines int) ([]FieldStat, int, error) {
	if maxLines < 1 {
		return nil, 0, fmt.Errorf("probe: max lines must be >= 1, got %d", maxLines)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	type acc struct {
		stat   FieldStat
		hashes map[uint64]struct{}
		types  map[string]int
	}
	fields := make(map[string]*acc)
	lines := 0

	for lines < maxLines && sc.Scan() {
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			continue
		}
		lines++

		for k, v := range obj {
			a := fields[k]
			if a == nil {
				a = &acc{
					stat:   FieldStat{Name: k, NormName: normalizeFieldName(k)},
					hashes: make(map[uint64]struct{}),
					types:  make(map[string]int),
				}
				fields[k] = a
			}
			a.stat.Present++
			if v == nil {
				a.stat.Nulls++
				continue
			}

			rendered := renderValue(v)
			a.hashes[xxh3.HashString(rendered)] = struct{}{}
			a.types[inferType(v)]++
			if a.stat.Sample == "" {
				a.stat.Sample = truncate(rendered, 60)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, lines, fmt.Errorf("probe: read: %w", err)
	}

	out := make([]FieldStat, 0, len(fields))
	for _, a := range fields {
		a.stat.Distinct = len(a.hashes)
		a.stat.Type = dominantType(a.types)
		out = append(out, a.stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, lines, nil
}

// normalizeFieldName lowercases, strips accents (NFD, drop nonspacing
// marks, NFC) and maps separator runes to single underscores, yielding a
// safe SQL column name.
func normalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "col"
	}
	return name
}

// inferType maps a decoded JSON value onto a coarse type label. Strings that
// parse as a calendar date are reported as date, matching the update_date
// column of the dump.
func inferType(v any) string {
	switch x := v.(type) {
	case string:
		if _, err := time.Parse("2006-01-02", x); err == nil {
			return "date"
		}
		return "string"
	case float64:
		if x == float64(int64(x)) {
			return "integer"
		}
		return "float"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "string"
	}
}

// dominantType picks the most frequent label; integer widens to float when
// both were seen.
func dominantType(counts map[string]int) string {
	if len(counts) == 0 {
		return "null"
	}
	if len(counts) == 2 && counts["integer"] > 0 && counts["float"] > 0 {
		return "float"
	}
	best, bestN := "", -1
	for t, n := range counts {
		if n > bestN || (n == bestN && t < best) {
			best, bestN = t, n
		}
	}
	return best
}

func renderValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func truncate(s string, n int) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		return r
	}, s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
