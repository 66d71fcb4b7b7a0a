// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/meta"
)

const bashCompletionScript = `# bash completion for apidiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_apidiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "dr gen si sq vq completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
    dr)
      local opts="--color -c --output -o --pick --raw --store --passphrase -p --tldr"
            ;;
        gen)
      local opts="--bin --encrypt --out -O --passphrase -p --tldr"
            ;;
        si)
      local opts="$common --store --passphrase -p"
            ;;
        sq)
      local opts="$common --schema --store --passphrase -p"
            ;;
        vq)
      local opts="$common --schema --store --limit"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        if [[ "$cmd" == "dr" ]]; then
            COMPREPLY=( $(compgen -W "markdown json yaml" -- "$cur") )
        else
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        fi
        return 0
    fi

  # If current token starts with '-', offer flags
  if [[ "$cur" == -* ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Otherwise, we're on a snapshot ref positional - complete files
  COMPREPLY=( $(compgen -o default -- "$cur") )
  return 0
}

complete -F _apidiff apidiff
`

const zshCompletionScript = `#compdef apidiff

_apidiff() {
  local -a cmds
  cmds=(
    'dr:diff report between two snapshots'
    'gen:generate a snapshot with the external indexer'
    'si:interactive snapshot console'
    'sq:symbol query'
    'vq:version query'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'apidiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    dr)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored raw output]' \
        '(-o --output)'{-o,--output}'[report format]:format:(markdown json yaml)' \
        '--pick[pick the two versions interactively]' \
        '--raw[print the structural JSON delta]' \
        '--store[snapshot store to use]:store' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '--tldr[show tldr page]' \
        '::old ref:_files' \
        '::new ref:_files'
      ;;
    gen)
      _arguments -C \
        '--bin[indexer binary]:bin' \
        '--encrypt[wrap in a passphrase envelope]' \
        '(-O --out)'{-O,--out}'[file to write the snapshot to]:file:_files' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '--tldr[show tldr page]'
      ;;
    si)
      _arguments -C \
        $common \
        '--store[snapshot store to use]:store' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '::ref:_files'
      ;;
    sq)
      _arguments -C \
        $common \
        '--schema[dump the available row fields]' \
        '--store[snapshot store to use]:store' \
        '(-p --passphrase)'{-p,--passphrase}'[snapshot passphrase]' \
        '::ref:_files'
      ;;
    vq)
      _arguments -C \
        $common \
        '--schema[dump the available row fields]' \
        '--store[snapshot store to use]:store' \
        '--limit[limit versions returned]:limit' \
        '::store:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _apidiff apidiff apidiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: apidiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "apidiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": m,
		},
		Action: completionCommandAction,
	}
}
