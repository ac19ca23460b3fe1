// Package export renders watchlist keywords to the formats the settings
// view offers for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/labhacker007/joti-cli/internal/api"
)

// Format selects the export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCSV, FormatJSON:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", name)
	}
}

// Filename suggests a timestamped output name for the given format.
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("joti-keywords-%s.%s", now.Format("2006-01-02"), format)
}

// WriteKeywords renders keywords to w in the chosen format.
func WriteKeywords(w io.Writer, format Format, keywords []api.Keyword) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, keywords)
	case FormatJSON:
		return writeJSON(w, keywords)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeCSV(w io.Writer, keywords []api.Keyword) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "keyword", "category", "is_active", "created_at"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, kw := range keywords {
		created := ""
		if kw.CreatedAt != nil {
			created = kw.CreatedAt.UTC().Format(time.RFC3339)
		}
		row := []string{kw.ID, kw.Keyword, kw.Category, fmt.Sprintf("%t", kw.IsActive), created}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, keywords []api.Keyword) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if keywords == nil {
		keywords = []api.Keyword{}
	}
	return enc.Encode(keywords)
}
