// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package gpgkey

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// dateLayouts are tried in order. GnuPG prints ISO dates by default but older
// builds and some locales emit the others.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"20060102T150405",
	"2006/01/02",
	"01/02/2006",
}

// parseDate returns nil for anything it cannot read.
func parseDate(tok string) *time.Time {
	tok = strings.TrimRightFunc(tok, func(r rune) bool { return !unicode.IsDigit(r) })
	if tok == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, tok); err == nil {
			return &t
		}
	}
	// --with-colons listings use seconds since the epoch.
	if isDigits(tok) && len(tok) >= 9 {
		if secs, err := strconv.ParseInt(tok, 10, 64); err == nil {
			t := time.Unix(secs, 0).UTC()
			return &t
		}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
