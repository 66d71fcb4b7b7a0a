// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package kindecho

import (
	"regexp"
	"strings"
)

// IsKindEcho returns true if any component of a symbol's declaration kind
// appears in the symbol's name, e.g. a class named BaseClass or a protocol
// named AppDelegateProtocol. Matching is case-insensitive and checks both
// substring containment and token equality when the name is split by
// non-alphanumeric chars and camelCase boundaries.
func IsKindEcho(kind string, name string) bool {
	if kind == "" || name == "" {
		return false
	}

	kindTokens := tokenizeKind(kind)
	nameLower := strings.ToLower(name)

	// Split the name by:
	// 1. Non-alphanumeric separators (dashes, dots, underscores, etc.)
	// 2. CamelCase boundaries (transition from lowercase to uppercase)
	// First replace camelCase boundaries with a delimiter, then split by non-alphanumeric.
	camelCaseRe := regexp.MustCompile(`([a-z])([A-Z])`)
	nameWithDelim := camelCaseRe.ReplaceAllString(name, "${1}_${2}")

	splitRe := regexp.MustCompile(`[^a-z0-9]+`)
	nameParts := splitRe.Split(strings.ToLower(nameWithDelim), -1)

	// Iterate over each kind token and see if it matches any name token. If
	// so, the name echoes its kind.
	for _, tok := range kindTokens {
		if tok == "" {
			continue
		}

		// If the token appears as a whole name part, the name echoes.
		for _, p := range nameParts {
			if p == tok {
				// Echoes - bail out.
				return true
			}
		}

		// Also treat any substring occurrence as a match. Covers cases like a
		// typedef named CGSizeTypedefAlias, where the name is jammed without
		// separators.
		if strings.Contains(nameLower, tok) {
			// Echoes - bail out.
			return true
		}
	}

	// Not an echo.
	return false
}

// tokenizeKind reduces a declaration kind to its meaningful tokens. Raw
// indexer kinds carry a vocabulary prefix (source.lang.objc.decl.method.
// instance); only what follows the decl/ref marker names the kind. Friendly
// kinds (class, protocol) pass straight through.
func tokenizeKind(kind string) []string {
	k := strings.ToLower(kind)

	for _, marker := range []string{".decl.", ".ref."} {
		if i := strings.LastIndex(k, marker); i >= 0 {
			k = k[i+len(marker):]
		}
	}

	splitRe := regexp.MustCompile(`[^a-z0-9]+`)
	return splitRe.Split(k, -1)
}
