// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cli defines the garkas command tree.

	garkas serve                  Run the HTTP API
	garkas podium [--year YYYY]   Print the podium
	garkas export [-o file]       Write all events to JSON
	garkas import <file> [--yes]  Add the events of an exported file

Configuration flags are persistent and shared by every command; see
package cliparse. The log level applies to a text handler on stderr.
*/
package cli
