// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package indexer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/config"
	"github.com/apidiff/apidiff/internal/log"
)

// Runner holds a resolved indexer invocation. The binary and its base
// arguments come from flags and config, in that order.
type Runner struct {
	Ctx context.Context `json:"-"`
	Cmd *cli.Command    `json:"-"`

	Bin  string
	Args []string
}

type RunnerOption = func(ctx context.Context, cmd *cli.Command, r *Runner) error

// NewRunner returns a Runner for the configured external indexer.
func NewRunner(ctx context.Context, cmd *cli.Command, options ...RunnerOption) (*Runner, error) {
	options = append([]RunnerOption{WithDefaults()}, options...)

	r := &Runner{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func WithDefaults() RunnerOption {
	return func(ctx context.Context, cmd *cli.Command, r *Runner) error {
		r.Bin = cmd.String("bin")
		if r.Bin == "" {
			r.Bin, _ = config.GetString("indexer.bin", "sourcekitten")
		}

		args, _ := config.GetString("indexer.args", "doc")
		r.Args = strings.Fields(args)

		return nil
	}
}

// WithExtraArgs appends arguments after the configured base arguments. The
// gen command passes its positional args through here, so invocations like
// "gen -- --single-file View.swift" reach the indexer untouched.
func WithExtraArgs(extra ...string) RunnerOption {
	return func(ctx context.Context, cmd *cli.Command, r *Runner) error {
		r.Args = append(r.Args, extra...)

		return nil
	}
}

// Run executes the indexer and returns its stdout, which must parse as a
// JSON declaration forest.
func (r *Runner) Run() ([]byte, error) {
	bin, err := exec.LookPath(r.Bin)
	if err != nil {
		return nil, fmt.Errorf("indexer %s not found: %w", r.Bin, err)
	}

	log.Debugf(">> indexer Run() %s", r)

	var stdout, stderr bytes.Buffer
	proc := exec.CommandContext(r.Ctx, bin, r.Args...)
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	if err := proc.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("indexer failed: %w: %s",
				err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("indexer failed: %w", err)
	}

	// The indexer emits one JSON array of per-file forests. Anything else
	// means the arguments pointed it at something it couldn't index.
	doc := bytes.TrimSpace(stdout.Bytes())
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsArray() {
		return nil, fmt.Errorf("indexer %s did not produce a snapshot document", r.Bin)
	}

	return doc, nil
}

func (r *Runner) String() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.Bin, strings.Join(r.Args, " ")))
}
