// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/snapshot"
	"github.com/apidiff/apidiff/internal/verutil"
)

// StoreLocal is a directory of snapshot files, one *.json document per
// version. The file name is the version ID and the file mod time orders the
// inventory.
type StoreLocal struct {
	Ctx context.Context
	Cmd *cli.Command
	Dir string `json:"-" validate:"dir"`
}

func (st *StoreLocal) Snapshot() ([]byte, error) {
	docs, err := st.Snapshots()
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

func (st *StoreLocal) Snapshots(specs ...string) ([][]byte, error) {
	var results [][]byte

	candidates, err := st.Versions()
	if err != nil {
		return nil, err
	}

	versions, err := verutil.Resolve(candidates, specs...)
	if err != nil {
		return nil, err
	}
	log.Debugf("versions: %v", versions)

	// Now pound through the found versions and return each of their documents.
	for _, v := range versions {
		body, err := os.ReadFile(v.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file: %w", err)
		}
		results = append(results, body)
	}

	return results, nil
}

// Versions scans st.Dir for snapshot files and returns them newest first,
// with ID as file name and CreatedAt from the file timestamp. Other Store
// types cache these results for efficiencies sake. We're not doing that
// here, since local filesystem access should be lickity split.
func (st *StoreLocal) Versions() ([]*verutil.Version, error) {
	var versions []*verutil.Version

	files, err := filepath.Glob(filepath.Join(st.Dir, "*.json"))
	if err != nil {
		return nil, err
	}

	type fileInfo struct {
		path string
		mod  int64
	}
	var infos []fileInfo
	for _, f := range files {
		stat, err := os.Stat(f)
		if err != nil || stat.IsDir() {
			continue
		}
		infos = append(infos, fileInfo{f, stat.ModTime().UnixNano()})
	}
	// Sort by mod time, descending
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].mod > infos[j].mod
	})

	for _, info := range infos {
		stat, err := os.Stat(info.path)
		if err != nil {
			continue
		}

		data, err := os.ReadFile(info.path)
		if err != nil {
			continue
		}

		// An encrypted document hides its per-file forests, so it counts 0.
		files := 0
		if !snapshot.IsEncrypted(data) {
			files = int(gjson.GetBytes(data, "#").Int())
		}

		versions = append(versions, &verutil.Version{
			ID:        filepath.Base(info.path),
			CreatedAt: stat.ModTime(),
			Files:     files,
			Size:      stat.Size(),
			Source:    info.path,
		})
	}

	return versions, nil
}

func (st *StoreLocal) String() string {
	return st.Dir
}

func (st *StoreLocal) Type() string {
	return "local"
}
