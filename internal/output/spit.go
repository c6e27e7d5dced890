// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/awssso/internal/attrs"
	"github.com/tfctl/awssso/internal/config"
	"github.com/tfctl/awssso/internal/filters"
)

// Formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// scalarKey names the single column produced for lists of plain values such
// as bucket or table names.
const scalarKey = "name"

// Options controls how a result set is shaped and rendered.
type Options struct {
	Format  string
	Filter  string
	Sort    string
	Titles  bool
	Color   bool
	Padding int
	Header  string
	Footer  string
}

// OptionsFromCommand reads the output flags of cmd. Flags a command does not
// define read as their zero value.
func OptionsFromCommand(cmd *cli.Command) Options {
	opts := Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: int(cmd.Int("padding")),
	}
	if h, ok := cmd.Metadata["header"].(string); ok {
		opts.Header = h
	}
	if f, ok := cmd.Metadata["footer"].(string); ok {
		opts.Footer = f
	}
	return opts
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit renders data for cmd using its output flags and writes to
// the root command's writer.
func SliceDiceSpit(cmd *cli.Command, data any, attrs attrs.AttrList) error {
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	return Render(w, data, attrs, OptionsFromCommand(cmd))
}

// Render filters, transforms, sorts and writes data. data is anything that
// marshals to a JSON array (or a single object, treated as one row). Arrays
// of scalars become rows with a single "name" column.
func Render(w io.Writer, data any, attrs attrs.AttrList, opts Options) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if opts.Format == FormatRaw {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}

	dataset, err := normalize(raw)
	if err != nil {
		return err
	}

	// Work on a copy; callers pass shared command defaults.
	attrs = append(attrs[:0:0], attrs...)
	if len(attrs) == 0 {
		attrs = inferAttrs(dataset)
	}
	if err := attrs.SetGlobalTransformSpec(); err != nil {
		return err
	}

	rows := filters.FilterDataset(dataset, attrs, opts.Filter)
	for _, row := range rows {
		for _, attr := range attrs {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case FormatJSON:
		out, err := json.Marshal(project(rows, attrs))
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(project(rows, attrs))
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatText, "":
		TableWriter(w, rows, attrs, opts)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", opts.Format)
	}
}

// normalize returns raw as a gjson array of objects.
func normalize(raw []byte) (gjson.Result, error) {
	result := gjson.ParseBytes(raw)
	if !result.IsArray() {
		if !result.IsObject() {
			return gjson.Result{}, fmt.Errorf("unsupported result shape: %s", result.Type)
		}
		return gjson.Parse("[" + result.Raw + "]"), nil
	}

	scalars := false
	result.ForEach(func(_, v gjson.Result) bool {
		scalars = !v.IsObject()
		return !scalars
	})
	if !scalars {
		return result, nil
	}

	rows := make([]map[string]any, 0, len(result.Array()))
	for _, v := range result.Array() {
		rows = append(rows, map[string]any{scalarKey: v.Value()})
	}
	wrapped, err := json.Marshal(rows)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(wrapped), nil
}

// inferAttrs uses the top-level keys of the first row, in document order.
func inferAttrs(dataset gjson.Result) attrs.AttrList {
	var inferred attrs.AttrList
	first := dataset.Get("0")
	first.ForEach(func(k, _ gjson.Result) bool {
		inferred = append(inferred, attrs.Attr{Key: k.String(), OutputKey: k.String(), Include: true})
		return true
	})
	log.Debugf("attrs inferred: attrs=%s", inferred.String())
	return inferred
}

// project drops excluded attrs from each row.
func project(rows []map[string]interface{}, attrs attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		p := make(map[string]interface{}, len(row))
		for _, attr := range attrs.Included() {
			p[attr.OutputKey] = row[attr.OutputKey]
		}
		out = append(out, p)
	}
	return out
}

// TableWriter renders the result set as a borderless table honoring color,
// titles and padding options.
func TableWriter(w io.Writer, resultSet []map[string]interface{}, attrs attrs.AttrList, opts Options) {
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	included := attrs.Included()

	rows := make([][]string, 0, len(resultSet))
	for _, result := range resultSet {
		row := make([]string, 0, len(included))
		for _, attr := range included {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	if pad == 0 {
		pad = 2
	}
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(included))
		for _, attr := range included {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns configured color values for table rendering. Defaults
// depend on the terminal background so output stays readable on light and
// dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
