// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package gpgkey

import (
	"strings"
	"time"
)

// Parse reads one key listing block, e.g.
//
//	pub   2048R/ABCD1234 2020-01-01 [expires: 2025-01-01]
//	uid                  Jane Doe <jane@example.com>
//	sub   2048R/EF567890 2025-01-01
//
// Line one is the pub line, line two (optional) the uid line and line three
// (optional) the sub line. Only a missing pub line or fingerprint is an error;
// every other field degrades to absent.
func Parse(raw string) (KeyRecord, error) {
	return parseLines(raw, splitLines(raw))
}

// parseLines fills a record from already split lines and keeps raw as given.
func parseLines(raw string, lines []string) (KeyRecord, error) {
	rec := KeyRecord{raw: raw}
	if len(lines) == 0 {
		return KeyRecord{}, malformed("lines", "input has no non-empty lines")
	}

	pub := tokenize(lines[0])
	fp, ok := pub.at(1)
	if !ok {
		return KeyRecord{}, malformed("pub", "fingerprint token missing in %q", strings.TrimSpace(lines[0]))
	}
	rec.fingerprint = keyID(fp)
	rec.keyCreation, rec.keyExpiration = pubDates(pub)

	if len(lines) > 1 {
		rec.userName, rec.hasUserName = uidName(lines[1])
		rec.userID, rec.hasUserID = uidEmail(lines[1])
	}

	if len(lines) > 2 {
		rec.subKey = parseSub(tokenize(lines[2]))
	}

	return rec, nil
}

// pubDates picks creation and expiration from the pub line. An explicit
// "expires:" label wins; otherwise the positional layouts are used.
func pubDates(pub tokens) (creation, expiration *time.Time) {
	if i := pub.label(2, expiryLabels...); i >= 0 {
		exp, _ := pub.at(i + 1)
		if i > 2 {
			created, _ := pub.at(2)
			creation = parseDate(created)
		}
		return creation, parseDate(exp)
	}
	if len(pub) >= 6 {
		created, _ := pub.at(2)
		exp, _ := pub.at(5)
		return parseDate(created), parseDate(exp)
	}
	// Only one date on the line; read it as the expiration.
	if only, ok := pub.at(2); ok {
		return nil, parseDate(only)
	}
	return nil, nil
}

func uidName(line string) (string, bool) {
	name, ok := between(line, "uid", "<")
	if !ok {
		return "", false
	}
	name = strings.TrimSpace(name)
	return name, name != ""
}

func uidEmail(line string) (string, bool) {
	return between(line, "<", ">")
}

func parseSub(sub tokens) *SubKey {
	id, ok := sub.at(1)
	if !ok {
		return nil
	}
	sk := &SubKey{ID: keyID(id)}
	if i := sub.label(2, expiryLabels...); i >= 0 {
		exp, _ := sub.at(i + 1)
		sk.Expiration = parseDate(exp)
	} else if exp, ok := sub.at(2); ok {
		sk.Expiration = parseDate(exp)
	}
	return sk
}
