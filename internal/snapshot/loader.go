// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tidwall/gjson"
	"golang.org/x/term"
)

// Parse validates raw snapshot bytes and returns the parsed document. An
// empty (or whitespace-only) input parses as the empty snapshot. The document
// root must be a JSON array of per-file entries.
func Parse(data []byte) (gjson.Result, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return gjson.Parse("[]"), nil
	}

	if !gjson.ValidBytes(trimmed) {
		return gjson.Result{}, fmt.Errorf("snapshot is not valid JSON")
	}

	doc := gjson.ParseBytes(trimmed)
	if !doc.IsArray() {
		return gjson.Result{}, fmt.Errorf("snapshot document root must be an array")
	}

	return doc, nil
}

// IsEncrypted reports whether raw snapshot bytes hold an encrypted envelope
// rather than a plain document.
func IsEncrypted(data []byte) bool {
	return gjson.GetBytes(data, "encrypted_data").Exists()
}

// ResolvePassphrase returns the passphrase for an encrypted snapshot. The
// flag value wins, then the APIDIFF_PASSPHRASE env variable, then an
// interactive prompt.
func ResolvePassphrase(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if passphrase := os.Getenv("APIDIFF_PASSPHRASE"); passphrase != "" {
		return passphrase, nil
	}

	return GetPassphrase()
}

// GetPassphrase prompts interactively for a passphrase without echoing input.
func GetPassphrase() (string, error) {
	var password []byte
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt)

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(syscall.Stdin), oldState) //nolint:errcheck

	fmt.Print("Enter passphrase: ")
	defer fmt.Print("\r")

loop:
	for {
		select {
		case <-signalChannel:
			fmt.Println("\nInterrupt received, exiting...")
			return "", fmt.Errorf("interrupted")
		default:
			var buf [1]byte
			n, readErr := syscall.Read(syscall.Stdin, buf[:])
			if readErr != nil || n == 0 {
				break loop
			}
			if buf[0] == '\n' || buf[0] == '\r' {
				break loop
			}
			if buf[0] == 127 || buf[0] == 8 { // Handle backspace
				if len(password) > 0 {
					password = password[:len(password)-1]
					fmt.Print("\b \b")
				}
			} else {
				password = append(password, buf[0])
				fmt.Print("*")
			}
		}
	}
	fmt.Println()
	return string(password), nil
}
