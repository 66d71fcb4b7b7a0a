// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"strings"
)

// ParseRef splits a snapshot reference into its location and an optional
// version spec. References take the form "location::spec", where location is
// a file, a store directory, an s3:// URL or "-" for stdin, and spec is a
// version selector understood by verutil.Resolve ("latest", "~1", an ID
// prefix). An empty ref is an error; a missing spec returns "".
func ParseRef(ref string) (string, string, error) {

	if ref == "" {
		return "", "", os.ErrInvalid
	}

	location, spec, found := strings.Cut(ref, "::")
	if found && location == "" {
		return "", "", os.ErrInvalid
	}

	return location, spec, nil
}
