// Package codec renders serialized envelopes as JSON, YAML, TOML or a
// terminal table.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"respdto/pkg/colors"
	"respdto/pkg/envelope"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatTable Format = "table"
)

// ErrUnknownFormat is returned for a format name codec cannot render.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML, FormatTable}
}

// ParseFormat maps a case-insensitive name to a Format. "yml" is accepted
// for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "table":
		return FormatTable, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encoder writes an envelope map in a single format. Indent is used by the
// JSON, YAML and TOML writers; Color only affects tables.
type Encoder struct {
	Format Format
	Indent string
	Color  bool
}

// Encode writes obj to w. Values that the chosen format cannot represent
// surface here as errors.
func (e Encoder) Encode(w io.Writer, obj map[string]any) error {
	switch e.Format {
	case FormatJSON, "":
		return e.encodeJSON(w, obj)
	case FormatYAML:
		return e.encodeYAML(w, obj)
	case FormatTOML:
		return e.encodeTOML(w, obj)
	case FormatTable:
		return e.encodeTable(w, obj)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, e.Format)
}

func (e Encoder) encodeJSON(w io.Writer, obj map[string]any) error {
	enc := json.NewEncoder(w)
	if e.Indent != "" {
		enc.SetIndent("", e.Indent)
	}
	if err := enc.Encode(obj); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (e Encoder) encodeYAML(w io.Writer, obj map[string]any) error {
	enc := yaml.NewEncoder(w)
	if n := len(e.Indent); n > 0 {
		enc.SetIndent(n)
	}
	if err := enc.Encode(obj); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

func (e Encoder) encodeTOML(w io.Writer, obj map[string]any) error {
	enc := toml.NewEncoder(w)
	if e.Indent != "" {
		enc.SetIndentSymbol(e.Indent)
		enc.SetIndentTables(true)
	}
	if err := enc.Encode(obj); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

func (e Encoder) encodeTable(w io.Writer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	highlight := ""
	if ok, isBool := obj[envelope.KeySuccess].(bool); isBool && e.Color {
		highlight = colors.ForSuccess(ok)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, k := range keys {
		val, err := cellValue(obj[k])
		if err != nil {
			return fmt.Errorf("encode table field %q: %w", k, err)
		}
		if k == envelope.KeyStatus || k == envelope.KeySuccess {
			val = colors.Paint(highlight, val)
		}
		tw.AppendRow(table.Row{k, val})
	}

	if _, err := io.WriteString(w, tw.Render()+"\n"); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// cellValue renders scalars with %v and everything else as compact JSON.
func cellValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", val), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
