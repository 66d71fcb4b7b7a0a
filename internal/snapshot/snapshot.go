// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"strings"
)

// Well-known field names in the indexer's output vocabulary.
const (
	KeyChildren   = "key.substructure"
	KeyUSR        = "key.usr"
	KeyKind       = "key.kind"
	KeyName       = "key.name"
	KeyFile       = "key.doc.file"
	KeyDocLine    = "key.doc.line"
	KeyDocColumn  = "key.doc.column"
	KeyScopeStart = "key.parsed_scope.start"
	KeyScopeEnd   = "key.parsed_scope.end"
	KeyParsedDecl = "key.parsed_declaration"
	KeySwiftDecl  = "key.swift_declaration"
)

// Record is the flattened, normalized form of one declaration node. Fields
// holds every field of the node except the children list, with scalar values
// stringified. Parent is the usr of the nearest enclosing declaration that
// carries one, or "" for top-level symbols.
type Record struct {
	Fields map[string]string
	Parent string
}

// Index is a symbol index keyed by usr.
type Index map[string]Record

// Kind returns the record's declaration kind, mapped to its short label.
func (r Record) Kind() string {
	return PrettyKind(r.Fields[KeyKind])
}

// RootName returns the plain name of the top-level symbol enclosing usr,
// found by walking the parent chain. A usr or parent reference that is not in
// the index is an error.
func (ix Index) RootName(usr string) (string, error) {
	rec, ok := ix[usr]
	if !ok {
		return "", fmt.Errorf("symbol not in index: %s", usr)
	}

	for rec.Parent != "" {
		parent, ok := ix[rec.Parent]
		if !ok {
			return "", fmt.Errorf("symbol %s references unknown parent %s", usr, rec.Parent)
		}
		usr = rec.Parent
		rec = parent
	}

	return rec.Fields[KeyName], nil
}

// DisplayName returns the qualified, backticked name of usr, suffixed with
// "in" clauses for each enclosing declaration ("`color` in `TestObject`").
func (ix Index) DisplayName(usr string) (string, error) {
	rec, ok := ix[usr]
	if !ok {
		return "", fmt.Errorf("symbol not in index: %s", usr)
	}

	name := "`" + rec.Fields[KeyName] + "`"
	if rec.Parent == "" {
		return name, nil
	}

	parent, err := ix.DisplayName(rec.Parent)
	if err != nil {
		return "", err
	}

	return name + " in " + parent, nil
}

// kindLabels maps declaration kind suffixes to the short labels used in
// reports. Kinds without a mapped suffix pass through unchanged.
var kindLabels = []struct {
	suffix string
	label  string
}{
	{".protocol", "protocol"},
	{".typedef", "typedef"},
	{".method.instance", "method"},
	{".property", "property"},
	{".class", "class"},
}

// PrettyKind maps a raw declaration kind ("source.lang.objc.decl.class") to
// the short label used in reports ("class").
func PrettyKind(kind string) string {
	for _, m := range kindLabels {
		if strings.HasSuffix(kind, m.suffix) {
			return m.label
		}
	}
	return kind
}

// fieldLabels maps field keys to the labels used in modification entries.
var fieldLabels = map[string]string{
	KeyParsedDecl: "declaration",
	KeySwiftDecl:  "swift declaration",
}

// FieldLabel maps a record field key to the label used when reporting a
// change to that field. Unmapped keys pass through unchanged.
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}
