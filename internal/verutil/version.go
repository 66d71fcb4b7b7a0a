// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package verutil

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Version describes one stored snapshot. Source is whatever the owning store
// needs to fetch the document again: a file path for local stores, an object
// key for S3.
type Version struct {
	ID        string
	CreatedAt time.Time
	Files     int
	Size      int64
	Source    string
}

// Age returns the version's age in human terms ("3 days ago").
func (v *Version) Age() string {
	return humanize.Time(v.CreatedAt)
}

// HumanSize returns the document size in human terms ("12 kB").
func (v *Version) HumanSize() string {
	return humanize.Bytes(uint64(v.Size))
}
