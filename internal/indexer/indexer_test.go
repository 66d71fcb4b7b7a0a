// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/config"
)

// withConfig swaps in a test configuration and restores the previous one when
// the test finishes.
func withConfig(t *testing.T, data map[string]interface{}) {
	t.Helper()

	saved := config.Config
	config.Config = config.Type{Source: "test", Data: data}
	t.Cleanup(func() { config.Config = saved })
}

func newGenCommand(bin string) *cli.Command {
	return &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bin", Value: bin},
		},
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	withConfig(t, map[string]interface{}{"log": "info"})

	r, err := NewRunner(context.Background(), newGenCommand(""))
	require.NoError(t, err)

	assert.Equal(t, "sourcekitten", r.Bin)
	assert.Equal(t, []string{"doc"}, r.Args)
}

func TestNewRunner_ConfigOverrides(t *testing.T) {
	withConfig(t, map[string]interface{}{
		"indexer": map[string]interface{}{
			"bin":  "myindexer",
			"args": "doc --objc",
		},
	})

	r, err := NewRunner(context.Background(), newGenCommand(""))
	require.NoError(t, err)

	assert.Equal(t, "myindexer", r.Bin)
	assert.Equal(t, []string{"doc", "--objc"}, r.Args)
}

func TestNewRunner_FlagBeatsConfig(t *testing.T) {
	withConfig(t, map[string]interface{}{
		"indexer": map[string]interface{}{"bin": "myindexer"},
	})

	r, err := NewRunner(context.Background(), newGenCommand("otherindexer"))
	require.NoError(t, err)

	assert.Equal(t, "otherindexer", r.Bin)
}

func TestNewRunner_WithExtraArgs(t *testing.T) {
	withConfig(t, map[string]interface{}{"log": "info"})

	r, err := NewRunner(context.Background(), newGenCommand(""),
		WithExtraArgs("--single-file", "View.swift"))
	require.NoError(t, err)

	assert.Equal(t, []string{"doc", "--single-file", "View.swift"}, r.Args)
}

func TestRunner_Run(t *testing.T) {
	doc := `[{"key.name":"UIView"}]`
	withConfig(t, map[string]interface{}{
		"indexer": map[string]interface{}{"bin": "echo", "args": doc},
	})

	r, err := NewRunner(context.Background(), newGenCommand(""))
	require.NoError(t, err)

	got, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, doc, string(got))
}

func TestRunner_Run_NotASnapshot(t *testing.T) {
	withConfig(t, map[string]interface{}{
		"indexer": map[string]interface{}{"bin": "echo", "args": "notjson"},
	})

	r, err := NewRunner(context.Background(), newGenCommand(""))
	require.NoError(t, err)

	_, err = r.Run()
	assert.ErrorContains(t, err, "did not produce a snapshot document")
}

func TestRunner_Run_CommandFails(t *testing.T) {
	withConfig(t, map[string]interface{}{
		"indexer": map[string]interface{}{"bin": "false", "args": ""},
	})

	r, err := NewRunner(context.Background(), newGenCommand(""))
	require.NoError(t, err)

	_, err = r.Run()
	assert.ErrorContains(t, err, "indexer failed")
}

func TestRunner_Run_MissingBinary(t *testing.T) {
	withConfig(t, map[string]interface{}{"log": "info"})

	r, err := NewRunner(context.Background(), newGenCommand("apidiff-no-such-indexer"))
	require.NoError(t, err)

	_, err = r.Run()
	assert.ErrorContains(t, err, "not found")
}

func TestRunner_String(t *testing.T) {
	withConfig(t, map[string]interface{}{"log": "info"})

	r, err := NewRunner(context.Background(), newGenCommand(""),
		WithExtraArgs("--module", "UIKit"))
	require.NoError(t, err)

	assert.Equal(t, "sourcekitten doc --module UIKit", r.String())
}
