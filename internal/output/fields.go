// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/apex/log"
)

// DumpFields writes a sorted list of the field names present in the flattened
// symbol rows to the provided writer. If w is nil, os.Stdout is used.
func DumpFields(rows []map[string]interface{}, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Symbol row fields that are directly available to the --attrs flag.
For the complete declaration records, including nested substructure, use
--output=raw and see the attrs help in the documentation.`)
	fmt.Fprintln(w, "")

	// Rows are sparse. A field dropped by the indexer on one declaration can
	// still be present on another, so we take the union.
	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			seen[key] = true
		}
	}

	if len(seen) == 0 {
		log.Debugf("No fields found in %d rows", len(rows))
		return
	}

	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fmt.Fprintln(w, field)
	}
}
