// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apidiff/apidiff/internal/cacheutil"
	"github.com/apidiff/apidiff/internal/command"
	"github.com/apidiff/apidiff/internal/config"
	"github.com/apidiff/apidiff/internal/log"
	"github.com/apidiff/apidiff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)

		return args
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI
	// handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position.
func processSetOnly(args []string) []string {
	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		// Remove the @set argument.
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		// Expand the set arguments at the removeIdx position.
		setArgs, _ := config.GetStringSlice(args[1] + "." + set)
		args = injectConfigSet(args, setArgs, removeIdx)
	}
	return args
}

// injectConfigSet splices the set's entries into args at insertIdx. Each
// entry may hold several whitespace-separated fields.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	return append(args[:insertIdx], append(expanded, args[insertIdx:]...)...)
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last
// one wins. Flags and their space-separated values travel together;
// positional args are untouched, including a bare "-" (stdin) and anything
// after a "--" terminator. "--output json" and "--output=json" name the same
// flag, "-o" does not.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type token struct {
		text     string
		value    string
		hasValue bool
		name     string
		isFlag   bool
	}

	var tokens []token
	terminated := false
	for i := 2; i < len(args); i++ {
		a := args[i]
		if terminated || a == "-" || !strings.HasPrefix(a, "-") {
			tokens = append(tokens, token{text: a})
			continue
		}
		if a == "--" {
			terminated = true
			tokens = append(tokens, token{text: a})
			continue
		}

		t := token{text: a, name: a, isFlag: true}
		if eq := strings.Index(a, "="); eq != -1 {
			t.name = a[:eq]
		} else if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			t.value = args[i+1]
			t.hasValue = true
			i++
		}
		tokens = append(tokens, t)
	}

	last := make(map[string]int)
	for i, t := range tokens {
		if t.isFlag {
			last[t.name] = i
		}
	}

	result := make([]string, 0, len(args))
	result = append(result, args[:2]...)
	for i, t := range tokens {
		if t.isFlag && last[t.name] != i {
			continue
		}
		result = append(result, t.text)
		if t.hasValue {
			result = append(result, t.value)
		}
	}

	return result
}
