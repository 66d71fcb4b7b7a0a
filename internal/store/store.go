// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/config"
	"github.com/apidiff/apidiff/internal/store/local"
	"github.com/apidiff/apidiff/internal/store/s3"
	"github.com/apidiff/apidiff/internal/verutil"
)

// Store abstracts the places a snapshot document can live.
type Store interface {
	// Snapshot returns the latest snapshot document.
	Snapshot() ([]byte, error)
	// Snapshots returns the snapshot documents selected by the specs.
	Snapshots(...string) ([][]byte, error)
	// Versions returns the store's inventory, most recent first.
	Versions() ([]*verutil.Version, error)
	String() string
	Type() string
}

// NewStore returns the Store implementation for a reference location. An
// existing file (or "-") is served as a single-version store, an existing
// directory becomes a local store and an s3:// URL an S3 store. An empty
// location falls back to the configured default store.
func NewStore(ctx context.Context, cmd *cli.Command, location string) (Store, error) {
	log.Debugf("NewStore: location: %s", location)

	if location == "" {
		return defaultStore(ctx, cmd)
	}

	if location == "-" {
		return &StoreFile{Ctx: ctx, Cmd: cmd, Path: location}, nil
	}

	if s3.IsS3URL(location) {
		return s3.NewStoreS3(ctx, cmd, s3.FromURL(location))
	}

	stat, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("can't resolve snapshot location %s: %w", location, err)
	}

	if stat.IsDir() {
		return local.NewStoreLocal(ctx, cmd, local.FromDir(location))
	}

	return &StoreFile{Ctx: ctx, Cmd: cmd, Path: location}, nil
}

// defaultStore builds a store from configuration when a reference names no
// location. store.dir wins over store.s3.bucket; --local skips S3 entirely.
func defaultStore(ctx context.Context, cmd *cli.Command) (Store, error) {
	if dir, err := config.GetString("store.dir"); err == nil && dir != "" {
		return local.NewStoreLocal(ctx, cmd, local.FromDir(dir))
	}

	if cmd != nil && cmd.Bool("local") {
		return nil, fmt.Errorf("no store.dir configured and --local given")
	}

	if bucket, err := config.GetString("store.s3.bucket"); err == nil && bucket != "" {
		return s3.NewStoreS3(ctx, cmd)
	}

	return nil, fmt.Errorf("no snapshot store configured")
}

// StoreFile serves a single snapshot document from one file, or from stdin
// when the path is "-". It exists so single files ride the same Store
// plumbing as directories and buckets.
type StoreFile struct {
	Ctx  context.Context
	Cmd  *cli.Command
	Path string
}

func (st *StoreFile) Snapshot() ([]byte, error) {
	if st.Path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(st.Path)
}

func (st *StoreFile) Snapshots(specs ...string) ([][]byte, error) {
	for _, spec := range specs {
		if !latestSpec(spec) {
			return nil, fmt.Errorf("%s holds a single version, can't resolve %s", st, spec)
		}
	}

	doc, err := st.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if len(specs) == 0 {
		return [][]byte{doc}, nil
	}

	results := make([][]byte, 0, len(specs))
	for range specs {
		results = append(results, doc)
	}
	return results, nil
}

func (st *StoreFile) Versions() ([]*verutil.Version, error) {
	if st.Path == "-" {
		return []*verutil.Version{{ID: "-", CreatedAt: time.Now(), Source: "-"}}, nil
	}

	stat, err := os.Stat(st.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot file: %w", err)
	}

	return []*verutil.Version{{
		ID:        stat.Name(),
		CreatedAt: stat.ModTime(),
		Size:      stat.Size(),
		Source:    st.Path,
	}}, nil
}

func (st *StoreFile) String() string {
	return st.Path
}

func (st *StoreFile) Type() string {
	return "file"
}

// latestSpec reports whether a version spec resolves to the newest version,
// the only one a single-file store can serve.
func latestSpec(spec string) bool {
	switch spec {
	case "", "latest", "~0", "latest~0":
		return true
	}
	return false
}
