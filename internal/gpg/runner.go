// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// Package gpg invokes the GnuPG binary and hands its listing output to the
// gpgkey parser.
package gpg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/toeirei/gpgkeys/internal/gpgkey"
	"github.com/toeirei/gpgkeys/internal/logging"
)

// DefaultBinary is used when Options.Binary is empty.
const DefaultBinary = "gpg"

// ErrNoBinary is returned when the configured gpg binary cannot be found.
var ErrNoBinary = errors.New("gpg binary not found")

// Options controls how gpg is invoked.
type Options struct {
	Binary    string
	HomeDir   string
	ExtraArgs []string
}

// Runner produces raw `--list-keys` output.
type Runner interface {
	ListKeys(ctx context.Context, pattern string) (string, error)
}

// ExecRunner runs gpg as a child process.
type ExecRunner struct {
	Options Options
}

// NewExecRunner returns a runner for the given options.
func NewExecRunner(opts Options) *ExecRunner {
	return &ExecRunner{Options: opts}
}

func (r *ExecRunner) binary() string {
	if r.Options.Binary == "" {
		return DefaultBinary
	}
	return r.Options.Binary
}

// Args assembles the command line passed to gpg, without the binary itself.
// Long key IDs keep sub-key IDs in the listing on GnuPG 2.1 and later;
// ExtraArgs come after and may override that.
func (r *ExecRunner) Args(pattern string) []string {
	args := []string{"--batch", "--no-tty", "--keyid-format", "long"}
	if r.Options.HomeDir != "" {
		args = append(args, "--homedir", r.Options.HomeDir)
	}
	args = append(args, r.Options.ExtraArgs...)
	args = append(args, "--list-keys")
	if pattern != "" {
		args = append(args, pattern)
	}
	return args
}

// ListKeys runs gpg and returns its stdout. A non-zero exit is reported with
// the trimmed stderr text.
func (r *ExecRunner) ListKeys(ctx context.Context, pattern string) (string, error) {
	bin, err := exec.LookPath(r.binary())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoBinary, r.binary())
	}

	args := r.Args(pattern)
	logging.Debugf("running %s %s", bin, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("gpg --list-keys: %w", ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("gpg --list-keys: %w", err)
		}
		return "", fmt.Errorf("gpg --list-keys: %w: %s", err, msg)
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		logging.Debugf("gpg stderr: %s", msg)
	}
	return stdout.String(), nil
}

// ListRecords runs r and parses every key block it printed. Records that
// parse are returned alongside the joined parse errors of the others.
func ListRecords(ctx context.Context, r Runner, pattern string) ([]gpgkey.KeyRecord, error) {
	out, err := r.ListKeys(ctx, pattern)
	if err != nil {
		return nil, err
	}
	recs, err := gpgkey.ParseListing(out)
	if err != nil {
		logging.Warnf("some key blocks could not be parsed: %v", err)
	}
	return recs, err
}

// StaticRunner returns fixed output. The parse command feeds captured
// listing text through it.
type StaticRunner struct {
	Output string
	Err    error
}

// ListKeys returns the fixed output.
func (s StaticRunner) ListKeys(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Output, s.Err
}
