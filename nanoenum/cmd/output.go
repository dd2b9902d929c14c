package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanoenum/nanoenum"
)

// Output formats accepted by --format
const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatGo       = "go"
)

var outputFormats = []string{formatTable, formatMarkdown, formatJSON, formatYAML, formatGo}

// tabular is implemented by every command result
type tabular interface {
	header() []string
	rows() [][]any
}

// goRenderer is implemented by results that can be written as Go source
type goRenderer interface {
	goSource() (string, error)
}

// OutputFormatter handles formatting command results for different output formats
type OutputFormatter struct {
	format string
}

// NewOutputFormatter creates a new output formatter. Unknown formats are
// rejected.
func NewOutputFormatter(format string) (*OutputFormatter, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = formatTable
	}
	for _, f := range outputFormats {
		if f == format {
			return &OutputFormatter{format: format}, nil
		}
	}
	return nil, NewValidationError("format output", "format", format,
		fmt.Sprintf("Use one of: %s", strings.Join(outputFormats, ", ")))
}

// Format formats the given data according to the configured format
func (of *OutputFormatter) Format(data tabular) (string, error) {
	switch of.format {
	case formatJSON:
		return of.formatJSON(data)
	case formatYAML:
		return of.formatYAML(data)
	case formatGo:
		return of.formatGo(data)
	case formatMarkdown:
		return of.renderTable(data).RenderMarkdown() + "\n", nil
	default:
		return of.renderTable(data).Render() + "\n", nil
	}
}

func (of *OutputFormatter) formatJSON(data any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (of *OutputFormatter) formatYAML(data any) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (of *OutputFormatter) formatGo(data tabular) (string, error) {
	r, ok := data.(goRenderer)
	if !ok {
		return "", NewValidationError("format output", "format", formatGo,
			"The go format is only available for show and define")
	}
	return r.goSource()
}

func (of *OutputFormatter) renderTable(data tabular) table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)

	header := data.header()
	row := make(table.Row, len(header))
	for i, h := range header {
		row[i] = h
	}
	w.AppendHeader(row)
	for _, r := range data.rows() {
		w.AppendRow(table.Row(r))
	}
	return w
}

// goIdentifier turns s into an exported Go identifier: words split on any
// non letter or digit are title-cased and joined
func goIdentifier(s string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(caser.String(w))
	}
	id := b.String()
	if id == "" || !unicode.IsLetter([]rune(id)[0]) {
		id = "Enum" + id
	}
	return id
}

// renderGoConsts writes enum as a named integer type with one constant per
// member, formatted with gofmt
func renderGoConsts(enum *nanoenum.Enumeration) (string, error) {
	typeName := goIdentifier(enum.Name())

	var b strings.Builder
	fmt.Fprintf(&b, "// %s is the %s enumeration %s.\n", typeName, enum.Policy(), enum.Name())
	fmt.Fprintf(&b, "type %s int\n\n", typeName)
	b.WriteString("const (\n")
	for _, m := range enum.Members() {
		fmt.Fprintf(&b, "%s%s %s = %d // %s\n", typeName, goIdentifier(m.Name()), typeName, m.ToIndex(), m.ToID())
	}
	b.WriteString(")\n")

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return "", fmt.Errorf("failed to format generated source: %w", err)
	}
	return string(src), nil
}
