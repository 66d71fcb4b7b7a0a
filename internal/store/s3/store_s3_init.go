// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/config"
)

type StoreS3Option = func(ctx context.Context, cmd *cli.Command, st *StoreS3) error

// IsS3URL reports whether a reference location names an S3 object.
func IsS3URL(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// FromURL points the store at an "s3://bucket/key" location. The key is the
// full object key of the snapshot document, not a directory.
func FromURL(location string) StoreS3Option {
	return func(ctx context.Context, cmd *cli.Command, st *StoreS3) error {
		rest := strings.TrimPrefix(location, "s3://")

		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return fmt.Errorf("s3 location %s needs both a bucket and a key", location)
		}

		st.Bucket = bucket
		st.Key = key

		log.Debugf("NewStoreS3 FromURL(): bucket = %s, key = %s", st.Bucket, st.Key)

		return nil
	}
}

// NewStoreS3 returns a StoreS3 object that implements the Store interface.
func NewStoreS3(ctx context.Context, cmd *cli.Command, options ...StoreS3Option) (*StoreS3, error) {
	options = append([]StoreS3Option{WithDefaults()}, options...)

	st := &StoreS3{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, st); err != nil {
			return nil, err
		}
	}

	if st.Bucket == "" || st.Key == "" {
		return nil, fmt.Errorf("s3 store needs store.s3.bucket and store.s3.key configured")
	}

	return st, nil
}

func WithDefaults() StoreS3Option {
	return func(ctx context.Context, cmd *cli.Command, st *StoreS3) error {
		st.Bucket, _ = config.GetString("store.s3.bucket")
		st.Key, _ = config.GetString("store.s3.key")
		st.Region, _ = config.GetString("store.s3.region")
		st.Profile, _ = config.GetString("store.s3.profile")

		return nil
	}
}
