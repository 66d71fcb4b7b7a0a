// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package kindecho

import (
	"testing"
)

func TestIsKindEcho(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		symName  string
		expected bool
	}{
		// Token equality tests - name part matches kind token exactly.
		{
			name:     "class token in name",
			kind:     "class",
			symName:  "BaseClass",
			expected: true,
		},
		{
			name:     "protocol token in name",
			kind:     "protocol",
			symName:  "AppDelegateProtocol",
			expected: true,
		},
		{
			name:     "property token in name",
			kind:     "property",
			symName:  "color_property",
			expected: true,
		},
		{
			name:     "method token in name",
			kind:     "method",
			symName:  "resetMethod",
			expected: true,
		},
		// Substring tests - kind token appears as substring in name.
		{
			name:     "typedef jammed in name",
			kind:     "typedef",
			symName:  "CGSizeTypedefAlias",
			expected: true,
		},
		{
			name:     "class jammed lowercase",
			kind:     "class",
			symName:  "myclasshelper",
			expected: true,
		},
		// Raw indexer kinds - only what follows the decl marker counts.
		{
			name:     "raw objc property kind",
			kind:     "sourcekitten.source.lang.objc.decl.property",
			symName:  "backgroundColorProperty",
			expected: true,
		},
		{
			name:     "raw swift enum kind",
			kind:     "source.lang.swift.decl.enum",
			symName:  "ColorEnum",
			expected: true,
		},
		{
			name:     "raw instance method kind",
			kind:     "sourcekitten.source.lang.objc.decl.method.instance",
			symName:  "sharedInstance",
			expected: true,
		},
		{
			name:     "vocabulary prefix does not leak",
			kind:     "source.lang.swift.decl.enum",
			symName:  "SwiftDeclarative",
			expected: false,
		},
		// Case insensitivity tests.
		{
			name:     "uppercase kind",
			kind:     "CLASS",
			symName:  "BaseClass",
			expected: true,
		},
		{
			name:     "mixed case name",
			kind:     "protocol",
			symName:  "Protocol_Support",
			expected: true,
		},
		// Non-echoing tests.
		{
			name:     "plain method name",
			kind:     "method",
			symName:  "layoutSubviews",
			expected: false,
		},
		{
			name:     "plain property name",
			kind:     "property",
			symName:  "backgroundColor",
			expected: false,
		},
		{
			name:     "plain class name",
			kind:     "class",
			symName:  "UIView",
			expected: false,
		},
		// Edge cases.
		{
			name:     "empty kind",
			kind:     "",
			symName:  "BaseClass",
			expected: false,
		},
		{
			name:     "empty name",
			kind:     "class",
			symName:  "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsKindEcho(tt.kind, tt.symName)
			if got != tt.expected {
				t.Errorf("IsKindEcho(%q, %q) = %v, want %v",
					tt.kind, tt.symName, got, tt.expected)
			}
		})
	}
}
