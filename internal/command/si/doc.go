// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package si implements the query engine behind the interactive snapshot
// console: dotted symbol-path lookups, raw record dumps, and HCL expression
// evaluation over a flattened snapshot.
package si
