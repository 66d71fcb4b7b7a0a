// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package driller

import (
	"embed"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var caseFS embed.FS

// drillCase is one Driller path lookup against a symbol-row shaped document.
type drillCase struct {
	Name     string                 `yaml:"name"`
	Doc      map[string]interface{} `yaml:"doc"`
	Path     string                 `yaml:"path"`
	Want     string                 `yaml:"want"`
	WantNil  bool                   `yaml:"wantNil"`
	WantList bool                   `yaml:"wantList"`
}

func loadDrillCases(t *testing.T) []drillCase {
	t.Helper()
	data, err := caseFS.ReadFile("testdata/driller_cases.yaml")
	require.NoError(t, err)

	var cases []drillCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	return cases
}

func TestDriller(t *testing.T) {
	for _, tt := range loadDrillCases(t) {
		t.Run(tt.Name, func(t *testing.T) {
			doc, err := json.Marshal(tt.Doc)
			require.NoError(t, err)

			result := Driller(string(doc), tt.Path)

			switch {
			case tt.WantNil:
				assert.False(t, result.Exists() && result.Type.String() != "Null",
					"wanted no result, got %v", result.Value())
			case tt.WantList:
				require.True(t, result.Exists())
				assert.True(t, result.IsArray(), "wanted a list, got %v", result.Value())
			default:
				require.True(t, result.Exists())
				assert.Equal(t, tt.Want, result.String())
			}
		})
	}
}

// A bare key collapses a singleton list to its element so row fields read
// naturally, while an explicit [] or [*] always keeps the list shape.
func TestDrillerBracketShapes(t *testing.T) {
	const doc = `{"children": [{"name": "frame"}]}`

	collapsed := Driller(doc, "children.name")
	assert.Equal(t, "frame", collapsed.String())

	kept := Driller(doc, "children[*]")
	require.True(t, kept.IsArray())
	assert.Len(t, kept.Array(), 1)

	dumped := Driller(doc, "children[]")
	assert.True(t, dumped.IsArray())
}
