package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/propertyflow-backend/internal/domain"
)

// Format names an output encoding of an augmented table
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// OutputColumns is the column order of an augmented table: base fields first,
// then the derived metrics.
func OutputColumns() []string {
	cols := make([]string, 0, len(domain.RequiredColumns)+len(domain.DerivedColumns))
	cols = append(cols, domain.RequiredColumns...)
	return append(cols, domain.DerivedColumns...)
}

// FormatNumber renders a value at full precision without exponent notation.
// Non-finite values are written as NaN, +Inf or -Inf.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}

// Write encodes records in the requested format
func Write(w io.Writer, records []domain.AugmentedRecord, format Format, delimiter rune) error {
	switch format {
	case FormatCSV, "":
		return WriteCSV(w, records, delimiter)
	case FormatYAML:
		return WriteYAML(w, records)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteCSV writes a header row and one row per record
func WriteCSV(w io.Writer, records []domain.AugmentedRecord, delimiter rune) error {
	writer := csv.NewWriter(w)
	if delimiter != 0 {
		writer.Comma = delimiter
	}

	columns := OutputColumns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		if err := writer.Write(cells(rec, columns)); err != nil {
			return fmt.Errorf("failed to write record %q: %w", rec.Property, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteYAML writes the records as a YAML sequence of mappings, keeping the
// column order of OutputColumns.
func WriteYAML(w io.Writer, records []domain.AugmentedRecord) error {
	columns := OutputColumns()
	seq := &yaml.Node{Kind: yaml.SequenceNode}

	for _, rec := range records {
		values := cells(rec, columns)
		item := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range columns {
			value := &yaml.Node{Kind: yaml.ScalarNode, Value: values[i]}
			if col == domain.ColumnProperty {
				value.Tag = "!!str"
				value.Style = yaml.DoubleQuotedStyle
			} else {
				value.Value = yamlFloat(values[i])
			}
			item.Content = append(item.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				value,
			)
		}
		seq.Content = append(seq.Content, item)
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{seq}}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}

// yamlFloat maps non-finite values to their YAML 1.2 spelling
func yamlFloat(s string) string {
	switch s {
	case "NaN":
		return ".nan"
	case "+Inf":
		return ".inf"
	case "-Inf":
		return "-.inf"
	}
	return s
}

func cells(rec domain.AugmentedRecord, columns []string) []string {
	numbers := rec.PropertyRecord.NumericFields()
	for k, v := range rec.Metrics.Values() {
		numbers[k] = v
	}

	out := make([]string, len(columns))
	for i, col := range columns {
		if col == domain.ColumnProperty {
			out[i] = rec.Property
			continue
		}
		out[i] = FormatNumber(numbers[col])
	}
	return out
}
