package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dphoyes/phototimeshift/playlist/common"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(stamps []common.ClipStamp, prettyPrint bool) ([]byte, error)
}

// NewFormatter returns the formatter registered under name
// ("plain", "json", "yaml", "csv", "table").
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return &PlainFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "table":
		return &TableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}

// PlainFormatter emits the tool's classic line format, one line per stamp:
//
//	NNNNN.MTS  20YY/MM/DD  HH:MM:SS
type PlainFormatter struct{}

func (f *PlainFormatter) Format(stamps []common.ClipStamp, prettyPrint bool) ([]byte, error) {
	var result strings.Builder
	for _, stamp := range stamps {
		result.WriteString(stamp.String())
		result.WriteByte('\n')
	}
	return []byte(result.String()), nil
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

func (f *JSONFormatter) Format(stamps []common.ClipStamp, prettyPrint bool) ([]byte, error) {
	if prettyPrint {
		return json.MarshalIndent(stamps, "", "  ")
	}
	return json.Marshal(stamps)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(stamps []common.ClipStamp, prettyPrint bool) ([]byte, error) {
	return yaml.Marshal(stamps)
}

// CSVFormatter formats output as CSV
type CSVFormatter struct{}

func (f *CSVFormatter) Format(stamps []common.ClipStamp, prettyPrint bool) ([]byte, error) {
	var result strings.Builder
	writer := csv.NewWriter(&result)

	records := [][]string{{"clip", "file_number", "date", "time", "recorded", "playlist"}}
	for _, stamp := range stamps {
		recorded := ""
		if !stamp.Recorded.IsZero() {
			recorded = stamp.Recorded.Format(time.RFC3339)
		}
		records = append(records, []string{
			stamp.Clip,
			strconv.Itoa(int(stamp.FileNumber)),
			stamp.Date,
			stamp.Time,
			recorded,
			stamp.Playlist,
		})
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(result.String()), nil
}

// TableFormatter formats output as a human-readable table
type TableFormatter struct{}

var titleCaser = cases.Title(language.English)

func (f *TableFormatter) Format(stamps []common.ClipStamp, prettyPrint bool) ([]byte, error) {
	var result strings.Builder

	headers := []string{"stream", "date", "time", "playlist"}
	widths := []int{9, 10, 8, 8}

	for _, stamp := range stamps {
		if len(stamp.Playlist) > widths[3] {
			widths[3] = len(stamp.Playlist)
		}
	}

	for i, header := range headers {
		if i > 0 {
			result.WriteString("  ")
		}
		fmt.Fprintf(&result, "%-*s", widths[i], titleCaser.String(header))
	}
	result.WriteByte('\n')

	for i, width := range widths {
		if i > 0 {
			result.WriteString("  ")
		}
		result.WriteString(strings.Repeat("-", width))
	}
	result.WriteByte('\n')

	for _, stamp := range stamps {
		fmt.Fprintf(&result, "%-*s  %-*s  %-*s  %-*s\n",
			widths[0], stamp.Clip,
			widths[1], stamp.Date,
			widths[2], stamp.Time,
			widths[3], stamp.Playlist,
		)
	}

	return []byte(result.String()), nil
}
