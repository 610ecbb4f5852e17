// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/danielhkuo/garkas/metrics"
)

// DefaultAccessCode applies when config.json is missing or has no accessCode
const DefaultAccessCode = "1234"

// ErrCancelled is returned when the person leaves the prompt empty
var ErrCancelled = errors.New("access prompt cancelled")

// Gate checks the shared passphrase before a mutating action.
// The code is held in plaintext and comes from an unauthenticated file, so this
// only deters accidental edits. It is not authentication.
type Gate struct {
	code string
}

func NewGate(code string) *Gate {
	if code == "" {
		code = DefaultAccessCode
	}
	return &Gate{code: code}
}

// Check compares the trimmed entry with the configured code
func (g *Gate) Check(entered string) bool {
	ok := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(entered)), []byte(g.code)) == 1
	metrics.ObserveAccess(ok)
	return ok
}

// Prompter asks a person for the access code
type Prompter interface {
	// Prompt returns the entered code, or ErrCancelled.
	// retry is true when the previous entry was wrong.
	Prompt(action string, retry bool) (string, error)
}

// Authorize prompts until the code matches or the prompt is cancelled.
// There is no attempt limit.
func (g *Gate) Authorize(ctx context.Context, action string, p Prompter) error {
	retry := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		code, err := p.Prompt(action, retry)
		if err != nil {
			return err
		}
		if g.Check(code) {
			return nil
		}

		slog.Warn("access code mismatch", "action", action)
		retry = true
	}
}

// Do authorizes once and then runs fn exactly once
func (g *Gate) Do(ctx context.Context, action string, p Prompter, fn func() error) error {
	if err := g.Authorize(ctx, action, p); err != nil {
		return err
	}
	return fn()
}
