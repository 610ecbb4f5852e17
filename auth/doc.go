// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the access gate for mutating actions.

# Not a Security Boundary

The gate compares a typed passphrase with the accessCode field of
config.json. The code is kept in plaintext in memory and config.json is
fetched without authentication. Treat it as a "are you sure you are one of
us" speed bump, nothing more.

# Checking a Code

	gate := auth.NewGate(code) // empty code falls back to "1234"
	ok := gate.Check(entered)  // surrounding whitespace ignored

# Prompting

Interactive callers use a Prompter. Authorize keeps asking after a wrong code
(there is no lockout) and stops when the prompt is cancelled:

	err := gate.Do(ctx, "import 12 events", prompter, func() error {
		return doImport()
	})

fn runs exactly once, and only after a matching code. A cancelled prompt
returns ErrCancelled and fn never runs.

TermPrompter hides input on a terminal (golang.org/x/term) and falls back to
reading lines when stdin is redirected. An empty entry cancels.

# HTTP

The API reads the code from the X-Access-Code header on every mutating
request; see middleware.RequireAccessCode. Each request is authorized on its
own, so a client retries simply by sending the request again.
*/
package auth
