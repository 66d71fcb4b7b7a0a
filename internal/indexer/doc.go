// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package indexer shells out to the external source indexer that produces
// snapshot documents.
package indexer
