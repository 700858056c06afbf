package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q: use table, json or yaml", format)
}

// view is one renderable result: the raw value for json/yaml and its
// tabular form.
type view struct {
	value   any
	headers []string
	rows    [][]any
	footer  string
}

type renderer struct {
	format string
	out    io.Writer
}

func (r renderer) render(v view) error {
	switch r.format {
	case formatJSON:
		data, err := json.MarshalIndent(v.value, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case formatYAML:
		// go through JSON so the wire field names are kept
		data, err := json.Marshal(v.value)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return err
		}
		_, err = r.out.Write(out)
		return err
	}

	if len(v.rows) == 0 {
		_, err := fmt.Fprintln(r.out, text.FgYellow.Sprint("No items found"))
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	header := make(table.Row, len(v.headers))
	for i, h := range v.headers {
		header[i] = strings.ToUpper(h)
	}
	t.AppendHeader(header)
	for _, row := range v.rows {
		t.AppendRow(row)
	}
	if v.footer != "" {
		t.SetCaption(v.footer)
	}
	t.Render()
	return nil
}

// keyValues renders a single record as a two column table.
func keyValues(value any, pairs ...[2]any) view {
	rows := make([][]any, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []any{text.FgHiCyan.Sprint(p[0]), p[1]})
	}
	return view{value: value, headers: []string{"field", "value"}, rows: rows}
}

func message(r renderer, format string, args ...any) error {
	if r.format != formatTable {
		return r.render(view{value: map[string]string{"message": fmt.Sprintf(format, args...)}})
	}
	_, err := fmt.Fprintf(r.out, format+"\n", args...)
	return err
}

func yesNo(b bool) string {
	if b {
		return text.FgGreen.Sprint("yes")
	}
	return text.FgRed.Sprint("no")
}
