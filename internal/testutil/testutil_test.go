// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package testutil

import "testing"

func TestKeyBlock(t *testing.T) {
	want := "pub   2048R/ABCD1234 2020-01-01 [expires: 2025-01-01]\n" +
		"uid                  Jane Doe <jane@example.com>\n" +
		"sub   2048R/EF567890 2025-01-01\n"
	if got := Jane.Block(); got != want {
		t.Fatalf("unexpected block:\n%q\nwant\n%q", got, want)
	}
	if got := (Key{ID: "ABCD1234"}).Block(); got != "pub   ABCD1234\n" {
		t.Fatalf("unexpected minimal block: %q", got)
	}
}

func TestListing(t *testing.T) {
	got := Listing("/k.gpg", Jane, John)
	want := "/k.gpg\n------\n" + Jane.Block() + "\n" + John.Block()
	if got != want {
		t.Fatalf("unexpected listing:\n%s", got)
	}
}
