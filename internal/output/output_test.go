// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/attrs"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "UIView", "doc_line": 3.0, "kind": "class"},
		{"name": "CALayer", "doc_line": 1.0, "kind": "class"},
		{"name": "NSString", "doc_line": 2.0, "kind": "class"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by name",
			spec:      "name",
			wantOrder: []string{"CALayer", "NSString", "UIView"},
		},
		{
			name:      "descending by name",
			spec:      "-name",
			wantOrder: []string{"UIView", "NSString", "CALayer"},
		},
		{
			name:      "ascending by line",
			spec:      "doc_line",
			wantOrder: []string{"CALayer", "NSString", "UIView"},
		},
		{
			name:      "descending by line",
			spec:      "-doc_line",
			wantOrder: []string{"UIView", "NSString", "CALayer"},
		},
		{
			name:      "case sensitive",
			spec:      "!name",
			wantOrder: []string{"CALayer", "NSString", "UIView"},
		},
		{
			name:      "multiple fields",
			spec:      "kind,doc_line",
			wantOrder: []string{"CALayer", "NSString", "UIView"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"UIView", "CALayer", "NSString"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{
			name:  "string",
			value: "viewDidLoad()",
			want:  "viewDidLoad()",
		},
		{
			name:  "int",
			value: 42,
			want:  "42",
		},
		{
			name:  "float64",
			value: 42.5,
			want:  "42",
		},
		{
			name:  "float64 with decimal",
			value: 42.7,
			want:  "43",
		},
		{
			name:  "bool true",
			value: true,
			want:  "true",
		},
		{
			name:  "bool false is zero value",
			value: false,
			want:  "",
		},
		{
			name:  "nil default",
			value: nil,
			want:  "",
		},
		{
			name:     "nil custom",
			value:    nil,
			emptyVal: "-",
			want:     "-",
		},
		{
			name:  "slice",
			value: []string{"a", "b"},
			want:  `["a","b"]`,
		},
		{
			name:  "map",
			value: map[string]int{"x": 1},
			want:  `{"x":1}`,
		},
		{
			name:  "zero value int",
			value: 0,
			want:  "",
		},
		{
			name:     "zero value with custom empty",
			value:    0,
			emptyVal: "N/A",
			want:     "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterfaceToStringEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{
			name:  "empty string",
			value: "",
			want:  "",
		},
		{
			name:     "empty string with custom empty",
			value:    "",
			emptyVal: "N/A",
			want:     "N/A",
		},
		{
			name:  "nested map",
			value: map[string]interface{}{"key": "value"},
			want:  `{"key":"value"}`,
		},
		{
			name:  "nested slice",
			value: []interface{}{1, "two", true},
			want:  `[1,"two",true]`,
		},
		{
			name:  "large number",
			value: 999999.999,
			want:  "1000000",
		},
		{
			name:  "negative number",
			value: -42.0,
			want:  "-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDumpFields(t *testing.T) {
	rows := []map[string]interface{}{
		{"usr": "c:objc(cs)UIView", "name": "UIView", "kind": "class"},
		{"usr": "c:objc(cs)UIView(im)layoutSubviews", "doc_line": 12.0},
	}

	var buf bytes.Buffer
	DumpFields(rows, &buf)

	// The union of the row keys, sorted, one per line after the intro.
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t,
		[]string{"doc_line", "kind", "name", "usr"},
		lines[len(lines)-4:])
}

func TestDumpFields_NoRows(t *testing.T) {
	var buf bytes.Buffer
	DumpFields(nil, &buf)

	assert.Contains(t, buf.String(), "--attrs")
	assert.NotContains(t, buf.String(), "usr")
}

func TestGetColors(t *testing.T) {
	// This test verifies that getColors returns color.Color values.
	header, even, odd := getColors("colors")

	// Should return non-nil color.Color values.
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

func TestTableWriter(t *testing.T) {
	tests := []struct {
		name      string
		resultSet []map[string]interface{}
		attrs     attrs.AttrList
		withColor bool
		withTitle string
		checkFunc func(*testing.T, *bytes.Buffer)
	}{
		{
			name:      "empty result set returns early",
			resultSet: []map[string]interface{}{},
			attrs:     attrs.AttrList{},
			checkFunc: func(t *testing.T, buf *bytes.Buffer) {
				assert.Empty(t, buf.String())
			},
		},
		{
			name: "single row preserves data",
			resultSet: []map[string]interface{}{
				{"name": "UIView", "usr": "c:objc(cs)UIView"},
			},
			attrs: attrs.AttrList{
				attrs.Attr{
					OutputKey: "name",
					Include:   true,
				},
				attrs.Attr{
					OutputKey: "usr",
					Include:   true,
				},
			},
			checkFunc: func(t *testing.T, buf *bytes.Buffer) {
				assert.Contains(t, buf.String(), "UIView")
				assert.Contains(t, buf.String(), "c:objc(cs)UIView")
			},
		},
		{
			name: "respects include flag filtering",
			resultSet: []map[string]interface{}{
				{"name": "UIView", "hidden": "notforyou"},
			},
			attrs: attrs.AttrList{
				attrs.Attr{
					OutputKey: "name",
					Include:   true,
				},
				attrs.Attr{
					OutputKey: "hidden",
					Include:   false,
				},
			},
			checkFunc: func(t *testing.T, buf *bytes.Buffer) {
				assert.Contains(t, buf.String(), "UIView")
				assert.NotContains(t, buf.String(), "notforyou")
			},
		},
		{
			name: "renders header metadata",
			resultSet: []map[string]interface{}{
				{"name": "UIView"},
			},
			attrs: attrs.AttrList{
				attrs.Attr{
					OutputKey: "name",
					Include:   true,
				},
			},
			withTitle: "Symbols in latest",
			checkFunc: func(t *testing.T, buf *bytes.Buffer) {
				assert.Contains(t, buf.String(), "Symbols in latest")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)

			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "color", Value: tt.withColor},
					&cli.BoolFlag{Name: "titles", Value: true},
				},
			}
			cmd.Metadata = make(map[string]interface{})
			if tt.withTitle != "" {
				cmd.Metadata["header"] = tt.withTitle
			}

			TableWriter(tt.resultSet, tt.attrs, cmd, buf)

			tt.checkFunc(t, buf)
		})
	}
}

func TestSliceDiceSpit(t *testing.T) {
	rowsJSON := `[
		{"usr": "c:objc(cs)UIView", "name": "UIView", "kind": "class"},
		{"usr": "c:objc(cs)CALayer", "name": "CALayer", "kind": "class"},
		{"usr": "c:objc(pl)NSCoding", "name": "NSCoding", "kind": "protocol"}
	]`

	attrList := attrs.AttrList{
		attrs.Attr{Key: "name", OutputKey: "name", Include: true},
		attrs.Attr{Key: "kind", OutputKey: "kind", Include: true},
	}

	newCmd := func(output, filter, sortSpec string) *cli.Command {
		cmd := &cli.Command{
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "output", Value: output},
				&cli.StringFlag{Name: "filter", Value: filter},
				&cli.StringFlag{Name: "sort", Value: sortSpec},
				&cli.BoolFlag{Name: "local"},
				&cli.BoolFlag{Name: "color"},
				&cli.BoolFlag{Name: "titles", Value: true},
			},
		}
		cmd.Metadata = make(map[string]interface{})
		return cmd
	}

	t.Run("raw dumps the buffer untouched", func(t *testing.T) {
		var buf bytes.Buffer
		raw := *bytes.NewBufferString(rowsJSON)

		SliceDiceSpit(raw, attrList, newCmd("raw", "kind=class", "name"), &buf, nil)

		assert.Equal(t, rowsJSON, buf.String())
	})

	t.Run("json filters and sorts", func(t *testing.T) {
		var buf bytes.Buffer
		raw := *bytes.NewBufferString(rowsJSON)

		SliceDiceSpit(raw, attrList, newCmd("json", "kind=class", "name"), &buf, nil)

		want := `[{"kind":"class","name":"CALayer"},{"kind":"class","name":"UIView"}]`
		assert.Equal(t, want, buf.String())
	})

	t.Run("yaml filters and sorts", func(t *testing.T) {
		var buf bytes.Buffer
		raw := *bytes.NewBufferString(rowsJSON)

		SliceDiceSpit(raw, attrList, newCmd("yaml", "kind=protocol", ""), &buf, nil)

		assert.Contains(t, buf.String(), "name: NSCoding")
		assert.NotContains(t, buf.String(), "UIView")
	})

	t.Run("table renders with post-processing", func(t *testing.T) {
		var buf bytes.Buffer
		raw := *bytes.NewBufferString(rowsJSON)

		post := func(rows []map[string]interface{}) error {
			for _, row := range rows {
				row["kind"] = strings.ToUpper(InterfaceToString(row["kind"]))
			}
			return nil
		}

		SliceDiceSpit(raw, attrList, newCmd("text", "", "name"), &buf, post)

		assert.Contains(t, buf.String(), "CALayer")
		assert.Contains(t, buf.String(), "PROTOCOL")
	})
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]interface{}{
		{"name": "UIView", "doc_line": 3.0},
		{"name": "CALayer", "doc_line": 1.0},
		{"name": "NSString", "doc_line": 2.0},
	}

	spec := "name"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]interface{}, len(testData))
		copy(data, testData)
		SortDataset(data, spec)
	}
}

func BenchmarkInterfaceToString(b *testing.B) {
	values := []interface{}{
		"viewDidLoad()",
		42,
		42.5,
		true,
		nil,
		[]string{"a", "b"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			InterfaceToString(v)
		}
	}
}
