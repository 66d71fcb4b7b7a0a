// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/attrs"
	"github.com/apidiff/apidiff/internal/meta"
	"github.com/apidiff/apidiff/internal/output"
	"github.com/apidiff/apidiff/internal/snapshot"
	"github.com/apidiff/apidiff/internal/store"
	"github.com/apidiff/apidiff/internal/util"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// DumpFieldsIfRequested writes the available row field names to stdout when
// --schema is set, and returns true if it handled the request.
func DumpFieldsIfRequested(cmd *cli.Command, rows []map[string]interface{}) bool {
	if cmd.Bool("schema") {
		output.DumpFields(rows, nil)
		return true
	}
	return false
}

// EmitRows marshals a row set and passes it to the common output routine.
func EmitRows(rows []map[string]interface{}, al attrs.AttrList, cmd *cli.Command,
	postProcess func([]map[string]interface{}) error) error {

	jsonBytes, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	var raw bytes.Buffer
	raw.Write(jsonBytes)
	output.SliceDiceSpit(raw, al, cmd, os.Stdout, postProcess)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr apidiff <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "apidiff", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// SnapshotDocs resolves a snapshot ref against its store and returns the
// decrypted document bytes for the requested version specs. A spec embedded
// in the ref ("snapshots/::~1") is resolved before any additional specs. An
// empty ref falls back to the --store flag and then the configured default
// store. With no specs at all, the latest version is returned.
func SnapshotDocs(ctx context.Context, cmd *cli.Command, ref string, specs ...string) ([][]byte, error) {
	if ref == "" {
		ref = cmd.String("store")
	}

	var location, spec string
	if ref != "" {
		var err error
		location, spec, err = util.ParseRef(ref)
		if err != nil {
			return nil, fmt.Errorf("bad snapshot ref %q", ref)
		}
	}

	if spec != "" {
		specs = append([]string{spec}, specs...)
	}

	return snapshotDocsAt(ctx, cmd, location, specs...)
}

func snapshotDocsAt(ctx context.Context, cmd *cli.Command, location string, specs ...string) ([][]byte, error) {
	st, err := store.NewStore(ctx, cmd, location)
	if err != nil {
		return nil, err
	}

	docs, err := st.Snapshots(specs...)
	if err != nil {
		return nil, err
	}

	if err := DecryptDocs(cmd, docs); err != nil {
		return nil, err
	}

	return docs, nil
}

// DecryptDocs decrypts any encrypted snapshot documents in place. The
// passphrase is resolved once (flag, then APIDIFF_PASSPHRASE, then an
// interactive prompt) and reused across documents.
func DecryptDocs(cmd *cli.Command, docs [][]byte) error {
	passphrase := ""

	for i := range docs {
		if !snapshot.IsEncrypted(docs[i]) {
			continue
		}

		if passphrase == "" {
			p, err := snapshot.ResolvePassphrase(cmd.String("passphrase"))
			if err != nil {
				return err
			}
			passphrase = p
		}

		plain, err := snapshot.Decrypt(docs[i], passphrase)
		if err != nil {
			return fmt.Errorf("failed to decrypt: %w", err)
		}
		docs[i] = plain
	}

	return nil
}

// SnapshotRows parses raw snapshot bytes and flattens the declaration forest
// into query rows.
func SnapshotRows(data []byte) ([]map[string]interface{}, error) {
	doc, err := snapshot.Parse(data)
	if err != nil {
		return nil, err
	}
	return snapshot.Rows(doc)
}
