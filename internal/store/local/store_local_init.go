// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

type StoreLocalOption = func(ctx context.Context, cmd *cli.Command, st *StoreLocal) error

func FromDir(dir string) StoreLocalOption {
	return func(ctx context.Context, cmd *cli.Command, st *StoreLocal) error {
		// Is dir a relative or absolute path?
		if filepath.IsAbs(dir) {
			st.Dir = dir
		} else {
			cwd, _ := os.Getwd()
			st.Dir = filepath.Join(cwd, dir)
		}

		log.Debugf("NewStoreLocal FromDir(): dir = %s", st.Dir)

		stat, err := os.Stat(st.Dir)
		if err != nil {
			return fmt.Errorf("failed to open snapshot store: %w", err)
		}
		if !stat.IsDir() {
			return fmt.Errorf("snapshot store %s is not a directory", st.Dir)
		}

		return nil
	}
}

// NewStoreLocal returns a StoreLocal object that implements the Store
// interface.
func NewStoreLocal(ctx context.Context, cmd *cli.Command, options ...StoreLocalOption) (*StoreLocal, error) {
	options = append([]StoreLocalOption{WithDefaults()}, options...)

	st := &StoreLocal{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, st); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func WithDefaults() StoreLocalOption {
	return func(ctx context.Context, cmd *cli.Command, st *StoreLocal) error {
		cwd, _ := os.Getwd()
		st.Dir = cwd

		return nil
	}
}
