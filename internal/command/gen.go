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
	"github.com/apidiff/apidiff/internal/indexer"
	"github.com/apidiff/apidiff/internal/meta"
	"github.com/apidiff/apidiff/internal/snapshot"
)

// genCommandAction is the action handler for the "gen" subcommand. It runs
// the external indexer, optionally wraps the produced document in the
// passphrase envelope, and writes it to --out or stdout. Positional args pass
// through to the indexer untouched.
func genCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "gen") {
		return nil
	}

	config.Config.Namespace = "gen"

	runner, err := indexer.NewRunner(ctx, cmd,
		indexer.WithExtraArgs(cmd.Args().Slice()...))
	if err != nil {
		return err
	}

	doc, err := runner.Run()
	if err != nil {
		return err
	}

	if cmd.Bool("encrypt") {
		passphrase, err := snapshot.ResolvePassphrase(cmd.String("passphrase"))
		if err != nil {
			return err
		}
		doc, err = snapshot.Encrypt(doc, passphrase)
		if err != nil {
			return fmt.Errorf("failed to encrypt snapshot: %w", err)
		}
	}

	out := cmd.String("out")
	if out == "" || out == "-" {
		fmt.Fprintln(os.Stdout, string(doc))
		return nil
	}

	if err := os.WriteFile(out, append(doc, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	log.Infof("wrote %s (%d bytes)", out, len(doc)+1)
	return nil
}

// genCommandBuilder constructs the cli.Command for "gen", wiring metadata,
// flags, and the action handler.
func genCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "generate a snapshot with the external indexer",
		UsageText: "apidiff gen [options] [-- indexer args]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "bin",
				Usage: "indexer binary. Overrides the configured default",
			},
			&cli.BoolFlag{
				Name:        "encrypt",
				Usage:       "wrap the snapshot in a passphrase envelope",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"O"},
				Usage:   "file to write the snapshot to (- for stdout)",
			},
			passphraseFlag,
			tldrFlag,
		},
		Action: genCommandAction,
	}
}
