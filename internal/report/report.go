// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// EmptyMessage is printed instead of a markdown report when two snapshots
// describe the same API.
const EmptyMessage = "The snapshots describe identical APIs."

// Report collects change entries grouped by root symbol name. Within a group
// entries keep their insertion order; groups render sorted by name.
type Report struct {
	groups map[string][]Change
}

// New returns an empty report.
func New() *Report {
	return &Report{groups: make(map[string][]Change)}
}

// Add appends changes to the group for the given root symbol name.
func (r *Report) Add(root string, changes ...Change) {
	r.groups[root] = append(r.groups[root], changes...)
}

// Empty reports whether the report holds no changes.
func (r *Report) Empty() bool {
	return len(r.groups) == 0
}

// Roots returns the group names in sorted order.
func (r *Report) Roots() []string {
	roots := make([]string, 0, len(r.groups))
	for root := range r.groups {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

// Changes returns the entries recorded for one root symbol, in insertion
// order.
func (r *Report) Changes(root string) []Change {
	return r.groups[root]
}

// Markdown renders the report with one section per root symbol, sorted by
// name, entries separated by blank lines.
func (r *Report) Markdown(w io.Writer) {
	for _, root := range r.Roots() {
		entries := make([]string, 0, len(r.groups[root]))
		for _, change := range r.groups[root] {
			entries = append(entries, change.Markdown())
		}
		fmt.Fprintf(w, "## %s\n\n", root)
		fmt.Fprintln(w, strings.Join(entries, "\n\n"))
		fmt.Fprintln(w)
		fmt.Fprintln(w)
	}
}

// Emit renders the report in the requested output format: markdown, json or
// yaml.
func (r *Report) Emit(format string, w io.Writer) error {
	switch format {
	case "", "markdown":
		r.Markdown(w)
		return nil
	case "json":
		data, err := json.Marshal(r.docs())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(r.docs())
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(data))
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// docs converts the grouped changes into their serialized form. Map key order
// is handled by the encoders, both of which sort keys.
func (r *Report) docs() map[string][]entryDoc {
	docs := make(map[string][]entryDoc, len(r.groups))
	for root, changes := range r.groups {
		entries := make([]entryDoc, 0, len(changes))
		for _, change := range changes {
			entries = append(entries, change.entry())
		}
		docs[root] = entries
	}
	return docs
}
