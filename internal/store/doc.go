// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package store resolves snapshot references to the stores that hold the
// snapshot documents. A reference location can be a single file, "-" for
// stdin, a directory of snapshot files or an s3:// URL. Each store hands
// back raw document bytes and the version inventory behind them.
package store // no-cloc
