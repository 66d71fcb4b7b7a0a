// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/apidiff/apidiff/internal/command/si"
	"github.com/apidiff/apidiff/internal/config"
	"github.com/apidiff/apidiff/internal/meta"
)

// siCommandAction is the action handler for the "si" subcommand. It loads one
// snapshot and launches an interactive console to explore its symbols.
func siCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "si") {
		return nil
	}

	config.Config.Namespace = "si"

	ref := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		ref = args[0]
	}

	docs, err := SnapshotDocs(ctx, cmd, ref)
	if err != nil {
		return err
	}

	rows, err := SnapshotRows(docs[0])
	if err != nil {
		return err
	}

	return runSiInteractiveConsole(si.New(rows))
}

// siModel represents the Bubble Tea model for the si command.
type siModel struct {
	input          textinput.Model
	history        []string // Full history for navigation (includes file history)
	sessionHistory []string // Only commands from this session (matches with outputs)
	histIndex      int
	output         []string
	console        *si.Console
}

func initialSiModel(console *si.Console) siModel {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 999
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorBlink)

	history := loadSiHistory(getSiHistoryFile())

	output := []string{
		fmt.Sprintf("Interactive snapshot console loaded. %d symbols found.", console.Size()),
		"Type 'help' for syntax, 'exit' or Ctrl+C to quit.",
	}

	return siModel{
		input:          ti,
		history:        history,
		sessionHistory: []string{},
		histIndex:      -1,
		output:         output,
		console:        console,
	}
}

func (m siModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m siModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			entry := m.input.Value()
			if strings.TrimSpace(entry) != "" {
				if entry == "exit" || entry == "quit" {
					return m, tea.Quit
				}

				result := ""
				if entry == "help" {
					result = getSiHelp()
				} else {
					result = m.console.Query(entry)
					if result == "" {
						result = "No results found."
					}
				}

				m.history = append(m.history, entry)
				m.sessionHistory = append(m.sessionHistory, entry)
				m.histIndex = -1
				m.output = append(m.output, result)
				saveSiHistory(getSiHistoryFile(), m.history)
			}
			m.input.SetValue("")
			return m, nil

		case "up":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex == -1 {
				m.histIndex = len(m.history) - 1
			} else if m.histIndex > 0 {
				m.histIndex--
			}
			m.input.SetValue(m.history[m.histIndex])
			m.input.CursorEnd()
			return m, nil

		case "down":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex >= 0 && m.histIndex < len(m.history)-1 {
				m.histIndex++
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			} else {
				m.histIndex = -1
				m.input.SetValue("")
			}
			return m, nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m siModel) View() string {
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#1FA2FF"))

	var lines []string

	// Add the initial welcome messages first.
	if len(m.output) >= 2 {
		lines = append(lines, m.output[0])
		lines = append(lines, m.output[1])
	}

	// Add each command from THIS SESSION with its corresponding output.
	for i := 0; i < len(m.sessionHistory); i++ {
		lines = append(lines, promptStyle.Render("> ")+m.sessionHistory[i])

		// Account for the 2 initial messages.
		if (i + 2) < len(m.output) {
			lines = append(lines, m.output[i+2])
		}
	}

	lines = append(lines, promptStyle.Render("> ")+m.input.View())

	return strings.Join(lines, "\n")
}

// getSiHelp returns the help text as a string.
func getSiHelp() string {
	return `Query syntax:
  Three query modes supported:

  1. List output (dotted symbol paths)
     TestObject                       - TestObject and everything nested in it
     TestObject.color                 - One nested symbol
     (empty path matches the whole snapshot)

  2. JSON output (paths starting with '.')
     .TestObject                      - Raw records under TestObject
     .TestObject.color                - Raw record for one symbol

  3. Expression evaluation (queries starting with '/')
     /symcount("TestObject")          - Symbols at and under an address
     /symkind("TestObject.color")     - Declaration kind of a symbol
     /sym("TestObject.color")         - Whole record as an object
     /upper(element(roots, 0))        - cty stdlib over snapshot variables

  Variables:
     symbols                          - Total symbol count
     roots, files, kinds              - Distinct values as lists

  Special queries:
     roots                            - Top-level symbol names
     files                            - Source files in the snapshot
     kinds                            - Declaration kinds present

  Navigation:
     Up/Down arrows                   - Navigate command history
     Ctrl+C                           - Exit`
}

// getSiHistoryFile returns the path to the si history file.
func getSiHistoryFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".apidiff_si_history"
	}
	return filepath.Join(homeDir, ".apidiff_si_history")
}

func loadSiHistory(filename string) []string {
	var history []string

	file, err := os.Open(filename)
	if err != nil {
		return history // Return empty history if file doesn't exist
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			history = append(history, line)
		}
	}

	return history
}

func saveSiHistory(filename string, history []string) {
	// Keep only the last 1000 commands.
	maxHistory := 1000
	start := 0
	if len(history) > maxHistory {
		start = len(history) - maxHistory
	}

	file, err := os.Create(filename)
	if err != nil {
		return // Silently fail if we can't save history
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for i := start; i < len(history); i++ {
		fmt.Fprintln(writer, history[i])
	}
	writer.Flush()
}

func runSiInteractiveConsole(console *si.Console) error {
	p := tea.NewProgram(initialSiModel(console))
	_, err := p.Run()
	return err
}

// siCommandBuilder constructs the cli.Command for "si" and wires up metadata,
// flags, and the action handler.
func siCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "si",
		Usage:     "interactive snapshot console",
		UsageText: "apidiff si [ref] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			storeFlagFor("si", m),
			passphraseFlag,
			tldrFlag,
		}, NewGlobalFlags("si")...),
		Action: siCommandAction,
	}
}
