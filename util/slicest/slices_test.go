// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package slicest

import (
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Fatalf("unexpected result: %v", got)
	}
	if got := Map([]int(nil), strconv.Itoa); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	in := []int{1, 2, 3, 4}
	got := Filter(in, func(i int) bool { return i%2 == 0 })
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("unexpected result: %v", got)
	}
	got[0] = 99
	if in[1] != 2 {
		t.Fatalf("Filter result aliases its input")
	}
}

func TestFind(t *testing.T) {
	v, ok := Find([]string{"a", "bb", "cc"}, func(s string) bool { return len(s) == 2 })
	if !ok || v != "bb" {
		t.Fatalf("unexpected result: %q %v", v, ok)
	}
	if _, ok := Find([]string{"a"}, func(s string) bool { return s == "z" }); ok {
		t.Fatalf("expected no match")
	}
}
