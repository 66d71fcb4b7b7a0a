// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/apidiff/apidiff/internal/log"
)

// Raw prints a structural JSON diff of two snapshot documents, with no
// API-level interpretation. Positional fields are not filtered, so this is
// the noisy, everything-included view.
func Raw(ctx context.Context, cmd *cli.Command, docs [][]byte) error {
	log.Debugf(">> raw differ()")

	// gojsondiff compares objects, snapshot documents are arrays.
	left := wrapDoc(docs[0])
	right := wrapDoc(docs[1])

	differ := gojsondiff.New()

	delta, err := differ.Compare(left, right)
	if err != nil {
		return fmt.Errorf("failed to compare snapshots: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(os.Stdout, "The snapshots are identical.")
		return nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       cmd.Bool("color"),
	}

	formatter := formatter.NewAsciiFormatter(jdoc, config)
	diffString, err := formatter.Format(delta)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, diffString)
	return nil
}

// wrapDoc nests a snapshot array under a single-key object so the object
// differ can walk it. Empty input counts as the empty snapshot.
func wrapDoc(doc []byte) []byte {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 {
		trimmed = []byte("[]")
	}

	wrapped := make([]byte, 0, len(trimmed)+len(`{"snapshot":}`))
	wrapped = append(wrapped, []byte(`{"snapshot":`)...)
	wrapped = append(wrapped, trimmed...)
	wrapped = append(wrapped, '}')
	return wrapped
}
