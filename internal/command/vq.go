// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/config"
	"github.com/apidiff/apidiff/internal/meta"
	"github.com/apidiff/apidiff/internal/store"
	"github.com/apidiff/apidiff/internal/util"
)

// vqDefaultAttrs specifies the default attributes displayed for snapshot
// versions in the "vq" command output.
var vqDefaultAttrs = []string{"id", "created", "age", "files", "size"}

// vqCommandAction is the action handler for the "vq" subcommand. It lists a
// store's snapshot versions, supports --tldr/--schema shortcuts, and emits
// results per common flags.
func vqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "vq") {
		return nil
	}

	config.Config.Namespace = "vq"

	location := cmd.String("store")
	if args := cmd.Args().Slice(); len(args) > 0 {
		// A version spec on the ref is meaningless for a listing, so only
		// the location half is kept.
		loc, _, err := util.ParseRef(args[0])
		if err != nil {
			return err
		}
		location = loc
	}

	st, err := store.NewStore(ctx, cmd, location)
	if err != nil {
		return err
	}

	versions, err := st.Versions()
	if err != nil {
		return err
	}

	if limit := cmd.Int("limit"); limit > 0 && len(versions) > limit {
		versions = versions[:limit]
	}

	rows := make([]map[string]interface{}, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, map[string]interface{}{
			"id":      v.ID,
			"created": v.CreatedAt.UTC().Format(time.RFC3339),
			"age":     v.Age(),
			"files":   v.Files,
			"size":    v.HumanSize(),
			"bytes":   v.Size,
			"source":  v.Source,
			"store":   st.Type(),
		})
	}

	if DumpFieldsIfRequested(cmd, rows) {
		return nil
	}

	attrs := BuildAttrs(cmd, vqDefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	return EmitRows(rows, attrs, cmd, nil)
}

// vqCommandBuilder constructs the cli.Command for "vq", wiring metadata,
// flags, and action handlers.
func vqCommandBuilder(m meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "vq",
		Usage:     "version query",
		UsageText: "apidiff vq [store] [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "limit versions returned",
				Value: 99999,
			},
			storeFlagFor("vq", m),
		},
		Action: vqCommandAction,
		Meta:   m,
	}).Build()
}
