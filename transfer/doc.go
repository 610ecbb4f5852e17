// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package transfer moves the event log in and out as a JSON file.

# Export

	name := transfer.ExportFilename(time.Now()) // fifa-events-2024-05-01.json
	err := transfer.Export(w, events)

The file is the collection as an indented JSON array, including storeId.

# Import

	events, err := transfer.ParseImport(r)
	n, err := transfer.Import(ctx, st, events)

ParseImport checks the whole file first: it must be an array and every
element needs a non-empty id, title, date and description. One bad record
rejects the file with ErrInvalidImport and nothing is written.

Import strips storeId so every record becomes a new document. Re-importing an
export therefore duplicates events instead of overwriting them.
*/
package transfer
