// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/apidiff/apidiff/internal/log"
)

// Flatten walks every declaration tree of a parsed snapshot document and
// returns the symbol index. Nodes without a usr are traversed but not
// indexed. When two nodes carry the same usr the later one wins.
func Flatten(doc gjson.Result) (Index, error) {
	ix := make(Index)

	err := walkForest(doc, func(usr, parent string, node gjson.Result) error {
		if prev, exists := ix[usr]; exists {
			log.Debugf("duplicate usr %s overwrites record from %s", usr, prev.Fields[KeyFile])
		}
		ix[usr] = Record{Fields: normalize(node), Parent: parent}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ix, nil
}

// Rows flattens a parsed snapshot document into one row per symbol for the
// query pipeline. Field keys are friendlied (key.doc.file becomes doc_file)
// and leaf values keep their JSON types. Synthesized usr, parent, root, kind,
// file and display columns are added to every row. As with Flatten, a later
// node with a duplicate usr replaces the earlier row.
func Rows(doc gjson.Result) ([]map[string]interface{}, error) {
	ix, err := Flatten(doc)
	if err != nil {
		return nil, err
	}

	var order []string
	byUSR := make(map[string]map[string]interface{})

	err = walkForest(doc, func(usr, parent string, node gjson.Result) error {
		row := make(map[string]interface{})
		node.ForEach(func(key, value gjson.Result) bool {
			if key.Str == KeyChildren {
				return true
			}
			fk := friendlyKey(key.Str)
			if fk == "kind" {
				// The short label takes the kind column; keep the raw
				// kind reachable.
				row["kind_raw"] = value.Value()
				return true
			}
			row[fk] = value.Value()
			return true
		})

		row["usr"] = usr
		row["parent"] = parent

		rawKind, _ := row["kind_raw"].(string)
		row["kind"] = PrettyKind(rawKind)

		file, _ := row["doc_file"].(string)
		row["file"] = file

		root, err := ix.RootName(usr)
		if err != nil {
			return err
		}
		row["root"] = root

		display, err := ix.DisplayName(usr)
		if err != nil {
			return err
		}
		row["display"] = display

		if _, dup := byUSR[usr]; !dup {
			order = append(order, usr)
		}
		byUSR[usr] = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, len(order))
	for _, usr := range order {
		rows = append(rows, byUSR[usr])
	}

	return rows, nil
}

// walkForest walks every per-file entry of a parsed snapshot document,
// invoking visit for each node that carries a usr.
func walkForest(doc gjson.Result, visit func(usr, parent string, node gjson.Result) error) error {
	var walkErr error

	doc.ForEach(func(_, fileEntry gjson.Result) bool {
		if !fileEntry.IsObject() {
			walkErr = fmt.Errorf("snapshot entry is not an object")
			return false
		}
		fileEntry.ForEach(func(_, root gjson.Result) bool {
			walkErr = walkNode(root, "", visit)
			return walkErr == nil
		})
		return walkErr == nil
	})

	return walkErr
}

// walkNode recurses through one declaration node and its children. Nodes
// without a usr pass their own parent through to their children.
func walkNode(node gjson.Result, parent string, visit func(usr, parent string, node gjson.Result) error) error {
	if !node.IsObject() {
		return fmt.Errorf("declaration node is not an object")
	}

	var usr string
	var children gjson.Result
	node.ForEach(func(key, value gjson.Result) bool {
		switch key.Str {
		case KeyUSR:
			usr = value.String()
		case KeyChildren:
			children = value
		}
		return true
	})

	next := parent
	if usr != "" {
		if err := visit(usr, parent, node); err != nil {
			return err
		}
		next = usr
	}

	if children.Exists() {
		if !children.IsArray() {
			return fmt.Errorf("%s is not an array", KeyChildren)
		}
		var walkErr error
		children.ForEach(func(_, child gjson.Result) bool {
			walkErr = walkNode(child, next, visit)
			return walkErr == nil
		})
		if walkErr != nil {
			return walkErr
		}
	}

	return nil
}

// normalize copies every field of a node except the children list,
// stringifying scalar values.
func normalize(node gjson.Result) map[string]string {
	fields := make(map[string]string)
	node.ForEach(func(key, value gjson.Result) bool {
		if key.Str != KeyChildren {
			fields[key.Str] = value.String()
		}
		return true
	})
	return fields
}

// friendlyKey turns an indexer field key into a query-pipeline column name:
// the key. prefix is dropped and remaining dots become underscores, so
// key.doc.file becomes doc_file.
func friendlyKey(key string) string {
	return strings.ReplaceAll(strings.TrimPrefix(key, "key."), ".", "_")
}
