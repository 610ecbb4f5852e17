// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package refdata loads the two reference files read once at startup.

# Sources

A source is either a local path or an http(s) URL. Files ending in .yaml or
.yml are parsed as YAML, everything else as JSON.

# Access Code

	code := refdata.LoadAccessCode(ctx, "config.json")

config.json holds {"accessCode": "..."}. A missing file, failed fetch,
non-2xx response, parse error, or empty field all return the default "1234".
Remote config gets a t=<unix-ms> query parameter so caches are bypassed.

# Persons

	persons := refdata.LoadPersons(ctx, "persons.json")

persons.json is an array of {"name", "avatar"}. Any failure returns the
built-in roster (Guaton, Hato, Chete).

Failures are logged and never returned: the service always starts.
*/
package refdata
