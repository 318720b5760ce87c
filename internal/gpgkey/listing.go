// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package gpgkey

import (
	"errors"
	"fmt"
	"strings"
)

// SplitListing cuts the full output of `gpg --list-keys` into one block per
// key. A block starts at a pub or sec line. The keyring header, the dashed
// rule under it and blank lines are dropped.
func SplitListing(text string) []string {
	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range nonBlankLines(text) {
		if startsBlock(line) {
			flush()
			cur = append(cur, line)
			continue
		}
		if cur != nil {
			cur = append(cur, line)
		}
	}
	flush()
	return blocks
}

func startsBlock(line string) bool {
	head, ok := tokenize(line).at(0)
	return ok && (head == "pub" || head == "sec")
}

// ParseListing parses every block of a full listing. Records that parse are
// returned in input order even when other blocks fail; the failures are
// joined into the returned error. Each record keeps its block verbatim as raw.
func ParseListing(text string) ([]KeyRecord, error) {
	var (
		records []KeyRecord
		errs    []error
	)
	for i, block := range SplitListing(text) {
		rec, err := parseLines(block, splitLines(keyLines(block)))
		if err != nil {
			errs = append(errs, fmt.Errorf("block %d: %w", i+1, err))
			continue
		}
		records = append(records, rec)
	}
	return records, errors.Join(errs...)
}

// keyLines reduces a listing block to the pub line, the first uid line and
// the first sub or ssb line, the shape Parse reads. Further uid, uat and sub
// lines are dropped. GnuPG 2.1 and later print the fingerprint on its own
// line; it replaces the algorithm or key ID token of the pub or sub line it
// follows. A uid placeholder keeps the sub line third when the key has no
// user ID.
func keyLines(block string) string {
	lines := nonBlankLines(block)
	if len(lines) == 0 {
		return ""
	}
	pub := tokenize(lines[0])

	var uid string
	var sub tokens
	owner := "pub"
	for _, line := range lines[1:] {
		if fpr, ok := fingerprintLine(line); ok {
			switch owner {
			case "pub":
				pub = withKeyID(pub, fpr)
			case "sub":
				sub = withKeyID(sub, fpr)
			}
			owner = ""
			continue
		}
		head, _ := tokenize(line).at(0)
		owner = ""
		switch {
		case head == "uid" && uid == "":
			uid = withoutValidity(line)
		case (head == "sub" || head == "ssb") && sub == nil:
			sub = tokenize(line)
			owner = "sub"
		}
	}

	out := []string{strings.Join(pub, " ")}
	if uid == "" && sub != nil {
		uid = "uid"
	}
	if uid != "" {
		out = append(out, uid)
	}
	if sub != nil {
		out = append(out, strings.Join(sub, " "))
	}
	return strings.Join(out, "\n")
}

// fingerprintLine recognises a line holding only a hex fingerprint, either
// bare or as "Key fingerprint = AAAA BBBB ...".
func fingerprintLine(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(s, "Key fingerprint ="); ok {
		s = rest
	}
	s = strings.ReplaceAll(s, " ", "")
	if len(s) < 16 || !isHex(s) {
		return "", false
	}
	return strings.ToUpper(s), true
}

// withKeyID puts fpr in place of token[1] when that token carries no key ID
// or a key ID that fpr ends with.
func withKeyID(t tokens, fpr string) tokens {
	id, ok := t.at(1)
	if !ok {
		return t
	}
	if strings.Contains(id, "/") && !strings.HasSuffix(fpr, strings.ToUpper(keyID(id))) {
		return t
	}
	out := append(tokens(nil), t...)
	out[1] = fpr
	return out
}

// withoutValidity drops the "[ultimate]" style marker GnuPG prints before the
// user ID.
func withoutValidity(line string) string {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "uid")
	if !ok {
		return line
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "[") {
		if j := strings.IndexByte(rest, ']'); j >= 0 {
			rest = strings.TrimSpace(rest[j+1:])
		}
	}
	return "uid " + rest
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return s != ""
}
