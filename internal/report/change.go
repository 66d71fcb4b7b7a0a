// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"
)

// Change is one reported difference between two snapshots. It is a closed
// set: Addition, Deletion or Modification. Equality is structural.
type Change interface {
	// Markdown renders the entry as one markdown block.
	Markdown() string

	entry() entryDoc
}

// Addition records a symbol present only in the new snapshot. Name is the
// qualified display name, Kind the short declaration kind label.
type Addition struct {
	Kind string
	Name string
}

// Deletion records a symbol present only in the old snapshot.
type Deletion struct {
	Kind string
	Name string
}

// Modification records one changed field on a symbol present in both
// snapshots. Field is the label of the changed field, From and To the old and
// new stringified values.
type Modification struct {
	Kind  string
	Name  string
	Field string
	From  string
	To    string
}

// Markdown renders an addition as a one-line entry.
func (a Addition) Markdown() string {
	return fmt.Sprintf("*new* %s: %s", a.Kind, a.Name)
}

// Markdown renders a deletion as a one-line entry.
func (d Deletion) Markdown() string {
	return fmt.Sprintf("*removed* %s: %s", d.Kind, d.Name)
}

// Markdown renders a modification with a From/To table. Multi-line values are
// flattened so they stay within their table cells.
func (m Modification) Markdown() string {
	return strings.Join([]string{
		fmt.Sprintf("*modified* %s: %s", m.Kind, m.Name),
		"",
		fmt.Sprintf("| Type of change: | %s |", flattenCell(m.Field)),
		fmt.Sprintf("| From: | %s |", flattenCell(m.From)),
		fmt.Sprintf("| To: | %s |", flattenCell(m.To)),
	}, "\n")
}

// entryDoc is the serialized form of a change used for JSON/YAML emission.
type entryDoc struct {
	Change string `json:"change" yaml:"change"`
	Kind   string `json:"kind" yaml:"kind"`
	Name   string `json:"name" yaml:"name"`
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`
	From   string `json:"from,omitempty" yaml:"from,omitempty"`
	To     string `json:"to,omitempty" yaml:"to,omitempty"`
}

func (a Addition) entry() entryDoc {
	return entryDoc{Change: "addition", Kind: a.Kind, Name: a.Name}
}

func (d Deletion) entry() entryDoc {
	return entryDoc{Change: "deletion", Kind: d.Kind, Name: d.Name}
}

func (m Modification) entry() entryDoc {
	return entryDoc{Change: "modification", Kind: m.Kind, Name: m.Name, Field: m.Field, From: m.From, To: m.To}
}

// flattenCell replaces line breaks with spaces so a value cannot break out of
// a markdown table row.
func flattenCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
