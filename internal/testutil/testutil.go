// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil builds GnuPG listing text for tests.
package testutil

import (
	"fmt"
	"strings"
)

// Key describes one block of a classic `gpg --list-keys` listing. Empty
// fields are left out of the generated text.
type Key struct {
	ID         string // e.g. 2048R/ABCD1234
	Created    string
	Expires    string
	Name       string
	Email      string
	SubID      string
	SubExpires string
}

// Block renders k as pub, uid and sub lines.
func (k Key) Block() string {
	var b strings.Builder
	pub := "pub   " + k.ID
	if k.Created != "" {
		pub += " " + k.Created
	}
	if k.Expires != "" {
		pub += " [expires: " + k.Expires + "]"
	}
	b.WriteString(pub + "\n")
	if k.Name != "" || k.Email != "" {
		uid := "uid                  " + k.Name
		if k.Email != "" {
			uid += " <" + k.Email + ">"
		}
		b.WriteString(strings.TrimRight(uid, " ") + "\n")
	}
	if k.SubID != "" {
		sub := "sub   " + k.SubID
		if k.SubExpires != "" {
			sub += " " + k.SubExpires
		}
		b.WriteString(sub + "\n")
	}
	return b.String()
}

// Listing renders a keyring listing with the usual path header followed by
// every key block separated by blank lines.
func Listing(keyring string, keys ...Key) string {
	var b strings.Builder
	if keyring != "" {
		fmt.Fprintf(&b, "%s\n%s\n", keyring, strings.Repeat("-", len(keyring)))
	}
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(k.Block())
	}
	return b.String()
}

// Jane and John are the fixtures most tests share.
var (
	Jane = Key{
		ID: "2048R/ABCD1234", Created: "2020-01-01", Expires: "2025-01-01",
		Name: "Jane Doe", Email: "jane@example.com",
		SubID: "2048R/EF567890", SubExpires: "2025-01-01",
	}
	John = Key{
		ID: "4096R/12345678", Created: "2018-05-05",
		Name: "John Roe", Email: "john@example.com",
	}
)
