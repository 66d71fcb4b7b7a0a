// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/config"
	"github.com/apidiff/apidiff/internal/meta"
)

// sqDefaultAttrs specifies the default attributes displayed for symbols in
// the "sq" command output. The usr rides along hidden so filters and sorts
// can reach it.
var sqDefaultAttrs = []string{"!usr", "root", "name", "kind", "file"}

// sqCommandAction is the action handler for the "sq" subcommand. It flattens
// one snapshot into symbol rows (including optional decryption), supports
// --tldr/--schema shortcuts, and emits results per common flags.
func sqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "sq") {
		return nil
	}

	config.Config.Namespace = "sq"

	ref := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		ref = args[0]
	}

	docs, err := SnapshotDocs(ctx, cmd, ref)
	if err != nil {
		return err
	}

	rows, err := SnapshotRows(docs[0])
	if err != nil {
		return err
	}

	if DumpFieldsIfRequested(cmd, rows) {
		return nil
	}

	attrs := BuildAttrs(cmd, sqDefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	return EmitRows(rows, attrs, cmd, nil)
}

// sqCommandBuilder constructs the cli.Command for "sq", wiring metadata,
// flags, and action handlers.
func sqCommandBuilder(m meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "sq",
		Usage:     "symbol query",
		UsageText: "apidiff sq [ref] [options]",
		Flags: []cli.Flag{
			storeFlagFor("sq", m),
			passphraseFlag,
		},
		Action: sqCommandAction,
		Meta:   m,
	}).Build()
}
