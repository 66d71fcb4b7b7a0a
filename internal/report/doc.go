// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report holds the change taxonomy for API diffs and assembles change
// entries into a report grouped by root symbol, rendered as markdown, JSON or
// YAML.
package report
