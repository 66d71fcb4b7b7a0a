// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package attrs parses --attrs specs into the attribute list that shapes
// query output rows.
package attrs // no-cloc
