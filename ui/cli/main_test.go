// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/toeirei/gpgkeys/internal/config"
	"github.com/toeirei/gpgkeys/internal/gpg"
	"github.com/toeirei/gpgkeys/internal/gpgkey"
	"github.com/toeirei/gpgkeys/internal/render"
	"github.com/toeirei/gpgkeys/internal/testutil"
)

var keyring = testutil.Listing("/home/jane/.gnupg/pubring.gpg", testutil.Jane, testutil.John)

// withTestEnv isolates config discovery and replaces the gpg runner,
// clipboard and styling with deterministic stand-ins.
func withTestEnv(t *testing.T, runner gpg.Runner) *[]string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	prevRunner, prevClip, prevRender := newRunner, copyToClipboard, renderOptions
	var copied []string
	newRunner = func(gpg.Options) gpg.Runner { return runner }
	copyToClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	renderOptions = func(io.Writer) render.Options { return render.Options{Plain: true} }
	t.Cleanup(func() {
		newRunner, copyToClipboard, renderOptions = prevRunner, prevClip, prevRender
		_ = os.Chdir(wd)
	})
	return &copied
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestApplyDefaultFlags_AddsFlags(t *testing.T) {
	cmd := &cobra.Command{}
	applyDefaultFlags(cmd)
	for _, name := range []string{"config", "format", "gpg.binary", "gpg.homedir", "language", "log.level", "verbose", "timeout"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("%s flag not present", name)
		}
	}
}

func TestParseCmd_Stdin(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	out, _, err := run(t, keyring, "parse")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, want := range []string{"Key ABCD1234", "Jane Doe", "Key 12345678", "Sub-key       EF567890"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseCmd_FileAsJSON(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	file := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(file, []byte(keyring), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, _, err := run(t, "", "parse", file, "--format", "json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.Contains(out, `"fingerprint": "ABCD1234"`) || !strings.Contains(out, `"user_id": "john@example.com"`) {
		t.Fatalf("unexpected json:\n%s", out)
	}
}

func TestParseCmd_Single(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	out, _, err := run(t, "pub   2048R/ABCD1234 2020-01-01\nuid Jane <j@x>\n", "parse", "-", "--single", "-o", "yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.Contains(out, "fingerprint: ABCD1234") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}

	_, _, err = run(t, "pub\n", "parse", "--single")
	if !errors.Is(err, gpgkey.ErrMalformedInput) {
		t.Fatalf("expected malformed input error, got %v", err)
	}
}

func TestParseCmd_PartialFailure(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	out, _, err := run(t, "pub\nuid x <y>\n"+keyring, "parse")
	if err == nil {
		t.Fatalf("expected error for malformed block")
	}
	if !errors.Is(err, gpgkey.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput in chain, got %v", err)
	}
	if !strings.Contains(out, "Key ABCD1234") {
		t.Fatalf("good records should still be printed:\n%s", out)
	}
}

func TestParseCmd_NoKeys(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	if _, _, err := run(t, "nothing here\n", "parse"); err == nil {
		t.Fatalf("expected error for input without keys")
	}
}

func TestParseCmd_MissingFile(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	if _, _, err := run(t, "", "parse", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseCmd_UnknownFormat(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	_, _, err := run(t, keyring, "parse", "--format", "xml")
	if !errors.Is(err, render.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestListCmd(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{Output: keyring})
	out, _, err := run(t, "", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.Count(out, "Key ") != 2 {
		t.Fatalf("expected two keys:\n%s", out)
	}
}

func TestListCmd_RunnerError(t *testing.T) {
	boom := errors.New("gpg exploded")
	withTestEnv(t, gpg.StaticRunner{Err: boom})
	if _, _, err := run(t, "", "list"); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}

func TestShowCmd_CopiesFingerprint(t *testing.T) {
	copied := withTestEnv(t, gpg.StaticRunner{Output: keyring})
	out, _, err := run(t, "", "show", "ef567890", "--copy")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Key ABCD1234") || strings.Contains(out, "Key 12345678") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if len(*copied) != 1 || (*copied)[0] != "ABCD1234" {
		t.Fatalf("unexpected clipboard writes: %v", *copied)
	}
}

func TestShowCmd_NotFound(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{Output: keyring})
	if _, _, err := run(t, "", "show", "FFFFFFFF"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestFindRecord(t *testing.T) {
	recs, err := gpgkey.ParseListing(keyring)
	if err != nil {
		t.Fatalf("ParseListing: %v", err)
	}
	cases := map[string]string{
		"ABCD1234":   "ABCD1234",
		"0xabcd1234": "ABCD1234",
		"1234":       "ABCD1234",
		"12345678":   "12345678",
		"EF567890":   "ABCD1234",
	}
	for id, want := range cases {
		rec, ok := findRecord(recs, id)
		if !ok || rec.Fingerprint() != want {
			t.Errorf("findRecord(%q) = %s,%v want %s", id, rec.Fingerprint(), ok, want)
		}
	}
	if _, ok := findRecord(recs, "  "); ok {
		t.Fatalf("blank id should not match")
	}
}

func TestParseCmd_ModernListing(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	listing := "pub   rsa2048 2020-01-01 [SC] [expires: 2025-01-01]\n" +
		"      0A1B2C3D4E5F60718293A4B5C6D7E8F9ABCD1234\n" +
		"uid           [ultimate] Jane Doe <jane@example.com>\n" +
		"uid           [ultimate] Jane <jane@work.example>\n"
	out, _, err := run(t, listing, "parse", "-o", "json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, want := range []string{`"fingerprint": "0A1B2C3D4E5F60718293A4B5C6D7E8F9ABCD1234"`, `"user_name": "Jane Doe"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sub_key") {
		t.Fatalf("second uid must not become a sub key:\n%s", out)
	}
}

func TestShowCmd_ModernFingerprint(t *testing.T) {
	listing := "pub   rsa2048/8293A4B5ABCD1234 2020-01-01 [SC]\n" +
		"      0A1B2C3D4E5F6071C6D7E8F98293A4B5ABCD1234\n" +
		"uid           [ultimate] Jane Doe <jane@example.com>\n"
	withTestEnv(t, gpg.StaticRunner{Output: listing})
	out, _, err := run(t, "", "show", "0A1B2C3D4E5F6071C6D7E8F98293A4B5ABCD1234")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Jane Doe") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRootCmd_RejectsUnknownLanguage(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{Output: keyring})
	_, _, err := run(t, "", "list", "--language", "xx")
	if err == nil || !strings.Contains(err.Error(), `"xx"`) {
		t.Fatalf("expected unsupported language error, got %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	out, _, err := run(t, "", "config", "init", "--format", "yaml", "--gpg.binary", "/usr/bin/gpg2")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	path, err := config.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("output should name the written file %s:\n%s", path, out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	for _, want := range []string{"format: yaml", "binary: /usr/bin/gpg2", "language: en"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("config file missing %q:\n%s", want, data)
		}
	}

	if _, _, err := run(t, "", "config", "init"); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	if _, _, err := run(t, "", "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
}

func TestConfigLanguages(t *testing.T) {
	withTestEnv(t, gpg.StaticRunner{})
	out, _, err := run(t, "", "config", "languages")
	if err != nil {
		t.Fatalf("config languages failed: %v", err)
	}
	for _, want := range []string{"* en", "English", "de", "Deutsch"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
