package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// minFields is the number of columns a row needs: key, description, unit,
// price. Extra columns are ignored.
const minFields = 4

// LoadStats summarizes a lenient parse so dropped rows stay visible.
type LoadStats struct {
	Rows     int `json:"rows"`     // non-blank data rows seen
	Accepted int `json:"accepted"` // rows that became entries
	Dropped  int `json:"dropped"`  // rows with too few fields
	Unpriced int `json:"unpriced"` // accepted rows whose price did not parse
}

// Parse converts catalog text into entries, in file order. The first
// non-blank line is the header. Malformed rows are dropped.
func Parse(text string) []Entry {
	entries, _ := ParseWithStats(text)
	return entries
}

// ParseWithStats is Parse plus a count of what was kept and dropped.
func ParseWithStats(text string) ([]Entry, LoadStats) {
	var (
		entries    []Entry
		stats      LoadStats
		headerSeen bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		stats.Rows++

		fields := splitLine(line)
		if len(fields) < minFields {
			stats.Dropped++
			continue
		}
		for i := range fields {
			fields[i] = cleanField(fields[i])
		}

		e := Entry{
			Key:         fields[0],
			Description: fields[1],
			Unit:        fields[2],
		}
		price, err := decimal.NewFromString(fields[3])
		if err != nil {
			e.UnitPrice = decimal.Zero
			e.PriceUnavailable = true
			stats.Unpriced++
		} else {
			e.UnitPrice = price
		}

		entries = append(entries, e)
		stats.Accepted++
	}

	return entries, stats
}

// Load reads catalog text from r. Only read errors are returned.
func Load(r io.Reader) ([]Entry, LoadStats, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, LoadStats{}, fmt.Errorf("reading catalog: %w", err)
	}
	entries, stats := ParseWithStats(buf.String())
	return entries, stats, nil
}

// LoadFile reads and parses a catalog file from disk.
func LoadFile(path string) (*Catalog, LoadStats, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the local user
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	entries, stats, err := Load(f)
	if err != nil {
		return nil, stats, err
	}
	return New(entries), stats, nil
}

// splitLine splits one line on commas outside quotes. Quote characters are
// kept in the field text for cleanField to strip. An unbalanced quote leaves
// the rest of this line quoted; the state never spills into the next line.
func splitLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(fields, cur.String())
}

// cleanField trims whitespace; a field wrapped in quotes loses them and has
// doubled quotes collapsed.
func cleanField(field string) string {
	t := strings.TrimSpace(field)
	if len(t) >= 2 && strings.HasPrefix(t, `"`) && strings.HasSuffix(t, `"`) {
		return strings.ReplaceAll(t[1:len(t)-1], `""`, `"`)
	}
	return t
}
