// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package si

import (
	"fmt"
	"sort"
	"strings"
)

// Console answers queries against one flattened snapshot. Addresses are
// plain dotted symbol paths built from the parent chain, "TestObject.color"
// for a property nested in a class.
type Console struct {
	rows   []map[string]interface{}
	order  []string
	byAddr map[string][]map[string]interface{}
}

// New builds a console over flattened snapshot rows. Rows whose address
// collides (same name chain declared twice) are all kept and reported
// together.
func New(rows []map[string]interface{}) *Console {
	c := &Console{
		rows:   rows,
		byAddr: make(map[string][]map[string]interface{}),
	}

	byUSR := make(map[string]map[string]interface{}, len(rows))
	for _, row := range rows {
		if usr, ok := row["usr"].(string); ok {
			byUSR[usr] = row
		}
	}

	for _, row := range rows {
		addr := address(row, byUSR)
		if _, seen := c.byAddr[addr]; !seen {
			c.order = append(c.order, addr)
		}
		c.byAddr[addr] = append(c.byAddr[addr], row)
	}

	return c
}

// address walks a row's parent chain and joins the names root-first.
func address(row map[string]interface{}, byUSR map[string]map[string]interface{}) string {
	var parts []string
	for row != nil {
		name, _ := row["name"].(string)
		parts = append([]string{name}, parts...)
		parent, _ := row["parent"].(string)
		row = byUSR[parent]
	}
	return strings.Join(parts, ".")
}

// Size returns the number of symbols the console holds.
func (c *Console) Size() int {
	return len(c.rows)
}

// Query routes one console entry to its handler and returns the rendered
// output. Three modes: '/'-prefixed (or parenthesized) expressions evaluate
// as HCL, '.'-prefixed symbol paths dump raw JSON records, and anything else
// lists matching symbol addresses.
func (c *Console) Query(query string) string {
	if strings.HasPrefix(query, "/") {
		return c.Evaluate(strings.TrimPrefix(query, "/"))
	}

	// Balanced parens without the prefix still read as an expression.
	if hasBalancedParens(query) {
		return c.Evaluate(query)
	}

	jsonMode := strings.HasPrefix(query, ".")
	if jsonMode {
		query = strings.TrimPrefix(query, ".")
	}

	if result, ok := c.specialQuery(query); ok {
		if jsonMode {
			return formatJSON(result)
		}
		return formatList(result)
	}

	matches := c.Match(query)

	if jsonMode {
		var blocks []string
		for _, row := range matches {
			blocks = append(blocks, formatJSON(row))
		}
		return strings.Join(blocks, "\n")
	}

	byUSR := make(map[string]map[string]interface{}, len(c.rows))
	for _, row := range c.rows {
		if usr, ok := row["usr"].(string); ok {
			byUSR[usr] = row
		}
	}

	var lines []string
	for _, row := range matches {
		kind, _ := row["kind"].(string)
		lines = append(lines, fmt.Sprintf("%s (%s)", address(row, byUSR), kind))
	}
	return strings.Join(lines, "\n")
}

// Match returns the rows addressed by a symbol path: the path itself plus
// everything nested under it. An empty path matches the whole snapshot.
func (c *Console) Match(path string) []map[string]interface{} {
	var matches []map[string]interface{}
	for _, addr := range c.order {
		if path == "" || addr == path || strings.HasPrefix(addr, path+".") {
			matches = append(matches, c.byAddr[addr]...)
		}
	}
	return matches
}

// specialQuery handles the built-in keyword queries.
func (c *Console) specialQuery(query string) ([]string, bool) {
	switch query {
	case "roots":
		return c.distinct("root"), true
	case "files":
		return c.distinct("file"), true
	case "kinds":
		return c.distinct("kind"), true
	}
	return nil, false
}

// distinct returns the sorted distinct values of one row column.
func (c *Console) distinct(column string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, row := range c.rows {
		v, _ := row[column].(string)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// hasBalancedParens checks if a string has balanced parentheses.
func hasBalancedParens(s string) bool {
	openCount := 0
	closeCount := 0

	for _, char := range s {
		switch char {
		case '(':
			openCount++
		case ')':
			closeCount++
		}
	}

	// Must have at least one pair of parens and they must be balanced.
	return openCount > 0 && openCount == closeCount
}

func formatList(values []string) string {
	return strings.Join(values, "\n")
}
