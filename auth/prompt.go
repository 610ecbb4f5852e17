// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// TermPrompter reads codes and confirmations from a terminal or a plain stream
type TermPrompter struct {
	in          *bufio.Reader
	out         io.Writer
	fd          int
	interactive bool
}

// NewTermPrompter hides typed codes when in is a terminal
func NewTermPrompter(in *os.File, out io.Writer) *TermPrompter {
	return &TermPrompter{
		in:          bufio.NewReader(in),
		out:         out,
		fd:          int(in.Fd()),
		interactive: isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()),
	}
}

// NewLinePrompter reads one line per answer from r
func NewLinePrompter(r io.Reader, out io.Writer) *TermPrompter {
	return &TermPrompter{in: bufio.NewReader(r), out: out}
}

func (p *TermPrompter) Prompt(action string, retry bool) (string, error) {
	if retry {
		fmt.Fprintln(p.out, "Incorrect code, try again.")
	}
	fmt.Fprintf(p.out, "Enter the access code to %s (empty to cancel): ", action)

	var code string
	if p.interactive {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read access code: %w", err)
		}
		code = string(b)
	} else {
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		code = line
	}

	if strings.TrimSpace(code) == "" {
		return "", ErrCancelled
	}
	return code, nil
}

// Confirm asks a yes/no question, defaulting to no
func (p *TermPrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := p.readLine()
	if errors.Is(err, ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (p *TermPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", ErrCancelled
	}
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
