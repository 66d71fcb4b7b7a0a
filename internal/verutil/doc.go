// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package verutil offers snapshot version discovery helpers. Given the
// version list of a snapshot store, it resolves user-supplied version specs
// (latest, latest~N, ID prefixes, local files) to concrete versions.
package verutil
