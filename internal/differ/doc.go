// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes API changes between two snapshot indexes: added,
// removed and persisted symbols via set arithmetic, then field-level
// modifications on the persisted set. It also renders raw structural JSON
// diffs and hosts the interactive version picker.
package differ
