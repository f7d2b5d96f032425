package cmd

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// outputJSON writes data as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes data as YAML.
func outputYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

// newTable returns a borderless, left-aligned table.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

// painter colours text when the output is a terminal.
type painter struct {
	enabled bool
}

func (p painter) name(s string) string {
	if !p.enabled {
		return s
	}
	return color.New(color.FgCyan, color.OpBold).Render(s)
}

func (p painter) muted(s string) string {
	if !p.enabled {
		return s
	}
	return color.New(color.FgGray).Render(s)
}

func (p painter) warn(s string) string {
	if !p.enabled {
		return s
	}
	return color.New(color.FgYellow).Render(s)
}

// highlight marks every case-insensitive occurrence of query in text.
func (p painter) highlight(text, query string) string {
	if !p.enabled || query == "" {
		return text
	}
	lower := cases.Lower(language.Und)
	haystack := lower.String(text)
	needle := lower.String(query)
	// Folding can change byte lengths outside ASCII; leave such text as is.
	if len(haystack) != len(text) {
		return text
	}

	style := color.New(color.FgBlack, color.BgYellow)
	var b strings.Builder
	for {
		i := strings.Index(haystack, needle)
		if i < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:i])
		b.WriteString(style.Render(text[i : i+len(needle)]))
		text = text[i+len(needle):]
		haystack = haystack[i+len(needle):]
	}
	return b.String()
}
