// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot parses API snapshot documents produced by a SourceKitten
// style indexer and flattens their declaration trees into an identity-keyed
// symbol index. It also handles the optional passphrase-encrypted snapshot
// envelope.
package snapshot
