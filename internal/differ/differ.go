// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"sort"

	"github.com/apidiff/apidiff/internal/log"
	"github.com/apidiff/apidiff/internal/report"
	"github.com/apidiff/apidiff/internal/snapshot"
)

// ignoredFields are positional fields whose churn carries no API meaning.
// Adding a line above a declaration moves every location below it, so these
// would swamp a report with noise.
var ignoredFields = map[string]struct{}{
	snapshot.KeyDocLine:    {},
	snapshot.KeyDocColumn:  {},
	snapshot.KeyScopeStart: {},
	snapshot.KeyScopeEnd:   {},
}

// Changes compares two symbol indexes and returns the change report. Symbols
// only in newIx become additions, symbols only in oldIx become deletions, and
// symbols in both are compared field by field. Entries are grouped under
// their root symbol name; within a group additions come first, then
// deletions, then modifications, each ordered by source file.
func Changes(oldIx, newIx snapshot.Index) (*report.Report, error) {
	log.Debugf(">> differ(): %d old, %d new", len(oldIx), len(newIx))

	rep := report.New()
	added, removed, persisted := partition(oldIx, newIx)

	for _, usr := range sortByFile(added, newIx) {
		name, root, err := names(newIx, usr)
		if err != nil {
			return nil, err
		}
		rep.Add(root, report.Addition{Kind: newIx[usr].Kind(), Name: name})
	}

	for _, usr := range sortByFile(removed, oldIx) {
		name, root, err := names(oldIx, usr)
		if err != nil {
			return nil, err
		}
		rep.Add(root, report.Deletion{Kind: oldIx[usr].Kind(), Name: name})
	}

	for _, usr := range sortByFile(persisted, newIx) {
		oldRec, newRec := oldIx[usr], newIx[usr]
		fields := changedFields(oldRec, newRec)
		if len(fields) == 0 {
			continue
		}

		name, root, err := names(newIx, usr)
		if err != nil {
			return nil, err
		}
		for _, field := range fields {
			rep.Add(root, report.Modification{
				Kind:  newRec.Kind(),
				Name:  name,
				Field: snapshot.FieldLabel(field),
				From:  oldRec.Fields[field],
				To:    newRec.Fields[field],
			})
		}
	}

	return rep, nil
}

// names resolves the display name and root group name for one symbol.
func names(ix snapshot.Index, usr string) (string, string, error) {
	name, err := ix.DisplayName(usr)
	if err != nil {
		return "", "", err
	}
	root, err := ix.RootName(usr)
	if err != nil {
		return "", "", err
	}
	return name, root, nil
}

// partition splits the key sets of two indexes into added, removed and
// persisted usrs.
func partition(oldIx, newIx snapshot.Index) (added, removed, persisted []string) {
	for usr := range newIx {
		if _, ok := oldIx[usr]; ok {
			persisted = append(persisted, usr)
		} else {
			added = append(added, usr)
		}
	}
	for usr := range oldIx {
		if _, ok := newIx[usr]; !ok {
			removed = append(removed, usr)
		}
	}
	return added, removed, persisted
}

// sortByFile orders usrs by their record's source file, then by usr so the
// report is stable when one file declares several symbols.
func sortByFile(usrs []string, ix snapshot.Index) []string {
	sort.Slice(usrs, func(i, j int) bool {
		fi := ix[usrs[i]].Fields[snapshot.KeyFile]
		fj := ix[usrs[j]].Fields[snapshot.KeyFile]
		if fi != fj {
			return fi < fj
		}
		return usrs[i] < usrs[j]
	})
	return usrs
}

// changedFields returns the sorted field names whose values differ between
// the two records, skipping the ignore list. A field present on only one
// side is not a modification; only fields carried by both records compare.
func changedFields(oldRec, newRec snapshot.Record) []string {
	var fields []string

	for field, oldVal := range oldRec.Fields {
		if _, skip := ignoredFields[field]; skip {
			continue
		}
		newVal, ok := newRec.Fields[field]
		if ok && oldVal != newVal {
			fields = append(fields, field)
		}
	}

	sort.Strings(fields)
	return fields
}
