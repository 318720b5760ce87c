// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for gpgkeys.
//
// Usage:
//
//	gpg --list-keys | gpgkeys parse
//	gpgkeys list [pattern]
//	gpgkeys show <fingerprint> [--copy]
//
// See --help for options.
package main

import (
	"fmt"
	"os"

	"github.com/toeirei/gpgkeys/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gpgkeys: %v\n", err)
		os.Exit(1)
	}
}
