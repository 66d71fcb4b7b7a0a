// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller navigates snapshot rows and records with dot paths so
// filters and the console can reach nested values.
package driller
