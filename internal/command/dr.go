// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/config"
	"github.com/apidiff/apidiff/internal/differ"
	"github.com/apidiff/apidiff/internal/meta"
	"github.com/apidiff/apidiff/internal/report"
	"github.com/apidiff/apidiff/internal/snapshot"
	"github.com/apidiff/apidiff/internal/store"
)

// drCommandAction is the action handler for the "dr" subcommand. It resolves
// two snapshot documents (old first, new second), flattens each into a symbol
// index and renders the change report.
func drCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "dr") {
		return nil
	}

	config.Config.Namespace = "dr"

	docs, err := resolveDiffDocs(ctx, cmd)
	if err != nil {
		return err
	}

	// Short circuit --raw mode. No API-level interpretation, just the
	// structural delta of the two documents.
	if cmd.Bool("raw") {
		return differ.Raw(ctx, cmd, docs)
	}

	oldDoc, err := snapshot.Parse(docs[0])
	if err != nil {
		return fmt.Errorf("bad old snapshot: %w", err)
	}
	newDoc, err := snapshot.Parse(docs[1])
	if err != nil {
		return fmt.Errorf("bad new snapshot: %w", err)
	}

	oldIx, err := snapshot.Flatten(oldDoc)
	if err != nil {
		return fmt.Errorf("bad old snapshot: %w", err)
	}
	newIx, err := snapshot.Flatten(newDoc)
	if err != nil {
		return fmt.Errorf("bad new snapshot: %w", err)
	}

	rep, err := differ.Changes(oldIx, newIx)
	if err != nil {
		return err
	}

	if rep.Empty() {
		fmt.Fprintln(os.Stdout, report.EmptyMessage)
		return nil
	}

	return rep.Emit(cmd.String("output"), os.Stdout)
}

// resolveDiffDocs turns the dr invocation into exactly two snapshot
// documents. Two refs resolve independently, zero refs diff ~1 against latest
// in the default store, and --pick asks interactively.
func resolveDiffDocs(ctx context.Context, cmd *cli.Command) ([][]byte, error) {
	refs := cmd.Args().Slice()

	if cmd.Bool("pick") {
		return pickSnapshotDocs(ctx, cmd, refs)
	}

	switch len(refs) {
	case 0:
		return SnapshotDocs(ctx, cmd, "", "~1", "latest")
	case 2:
		if refs[0] == "-" && refs[1] == "-" {
			return nil, fmt.Errorf("only one snapshot can be read from stdin")
		}
		oldDocs, err := SnapshotDocs(ctx, cmd, refs[0])
		if err != nil {
			return nil, err
		}
		newDocs, err := SnapshotDocs(ctx, cmd, refs[1])
		if err != nil {
			return nil, err
		}
		return [][]byte{oldDocs[0], newDocs[0]}, nil
	default:
		return nil, fmt.Errorf("dr needs an old and a new snapshot ref (or none with a configured store)")
	}
}

// pickSnapshotDocs lists the store's versions and lets the user choose the
// two to diff. The first pick is treated as the old snapshot.
func pickSnapshotDocs(ctx context.Context, cmd *cli.Command, refs []string) ([][]byte, error) {
	location := ""
	if len(refs) > 0 {
		location = refs[0]
	}
	if location == "" {
		location = cmd.String("store")
	}

	st, err := store.NewStore(ctx, cmd, location)
	if err != nil {
		return nil, err
	}

	versions, err := st.Versions()
	if err != nil {
		return nil, err
	}

	picked := differ.SelectVersions(versions)
	if len(picked) != 2 {
		return nil, fmt.Errorf("two versions are required for a diff")
	}

	docs, err := st.Snapshots(picked[0].ID, picked[1].ID)
	if err != nil {
		return nil, err
	}

	if err := DecryptDocs(cmd, docs); err != nil {
		return nil, err
	}

	return docs, nil
}

// drCommandBuilder constructs the cli.Command for "dr", wiring metadata,
// flags, and action/validator handlers.
func drCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "dr",
		Usage:     "diff report between two snapshots",
		UsageText: "apidiff dr [old ref] [new ref] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored raw output",
				Value:   false,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "report format",
				Value:   "markdown",
				Validator: func(value string) error {
					return FlagValidators(value, ReportOutputValidator)
				},
			},
			&cli.BoolFlag{
				Name:        "pick",
				Usage:       "pick the two versions interactively",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the structural JSON delta instead of the report",
				HideDefault: true,
			},
			storeFlagFor("dr", m),
			passphraseFlag,
			tldrFlag,
		},
		Action: drCommandAction,
	}
}
