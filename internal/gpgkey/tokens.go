// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package gpgkey

import (
	"strings"

	"github.com/toeirei/gpgkeys/util/slicest"
)

// splitLines removes bracket annotations and splits on CR/LF, dropping blank
// lines so CRLF, LF and CR input all behave the same.
func splitLines(raw string) []string {
	return nonBlankLines(strings.NewReplacer("[", "", "]", "").Replace(raw))
}

// nonBlankLines splits on CR/LF and keeps lines with visible content.
func nonBlankLines(text string) []string {
	return slicest.Filter(strings.FieldsFunc(text, isLineBreak), notBlank)
}

func isLineBreak(r rune) bool { return r == '\r' || r == '\n' }

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

// tokens is a bounds-checked view over the space separated fields of a line.
type tokens []string

func tokenize(line string) tokens {
	return tokens(strings.Fields(line))
}

// at returns the token at i, or ok=false when the line is too short.
func (t tokens) at(i int) (string, bool) {
	if i < 0 || i >= len(t) {
		return "", false
	}
	return t[i], true
}

// label returns the index of the first token at or beyond from that equals
// one of labels (case-insensitive), or -1.
func (t tokens) label(from int, labels ...string) int {
	for i := max(from, 0); i < len(t); i++ {
		for _, l := range labels {
			if strings.EqualFold(t[i], l) {
				return i
			}
		}
	}
	return -1
}

var expiryLabels = []string{"expires:", "expired:", "expire:"}

// keyID strips the classic "<size><algo>/" prefix, e.g. 2048R/ABCD1234.
func keyID(tok string) string {
	if i := strings.LastIndexByte(tok, '/'); i >= 0 && i < len(tok)-1 {
		return tok[i+1:]
	}
	return tok
}

// between returns the text between the first start marker and the first end
// marker that follows it.
func between(s, start, end string) (string, bool) {
	i := strings.Index(s, start)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}
