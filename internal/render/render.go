// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// Package render writes parsed key records as styled text, YAML or JSON.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"golang.org/x/term"

	"github.com/toeirei/gpgkeys/internal/gpgkey"
	"github.com/toeirei/gpgkeys/util/slicest"
)

// ErrUnknownFormat is returned for an output format Write does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the accepted output formats.
var Formats = []string{"text", "yaml", "json"}

const (
	colorSubtle    = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("81")
	colorSpecial   = lipgloss.Color("208")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSubtle).Width(14)
	expiredStyle = lipgloss.NewStyle().Foreground(colorSpecial)
	blockStyle   = lipgloss.NewStyle().MarginBottom(1)
)

// Options tweak text rendering.
type Options struct {
	// Plain disables colors and styling.
	Plain bool
	// Now, when set, marks keys that expired before it.
	Now time.Time
}

// AutoOptions disables styling when w is not a terminal.
func AutoOptions(w io.Writer) Options {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return Options{Now: time.Now()}
	}
	return Options{Plain: true, Now: time.Now()}
}

// Write renders records to w in the given format.
func Write(w io.Writer, format string, records []gpgkey.KeyRecord, opts Options) error {
	switch strings.ToLower(format) {
	case "", "text":
		return writeText(w, records, opts)
	case "yaml", "yml":
		return writeYAML(w, records)
	case "json":
		return writeJSON(w, records)
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

func views(records []gpgkey.KeyRecord) []gpgkey.RecordView {
	return slicest.Map(records, gpgkey.KeyRecord.View)
}

func writeYAML(w io.Writer, records []gpgkey.KeyRecord) error {
	data, err := yaml.Marshal(views(records))
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func writeJSON(w io.Writer, records []gpgkey.KeyRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views(records)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeText(w io.Writer, records []gpgkey.KeyRecord, opts Options) error {
	for _, r := range records {
		if _, err := io.WriteString(w, Text(r, opts)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Text renders a single record as a labeled block. The raw listing is not
// included; use KeyRecord.String for a full dump.
func Text(r gpgkey.KeyRecord, opts Options) string {
	v := r.View()
	style := func(s lipgloss.Style, text string) string {
		if opts.Plain {
			return text
		}
		return s.Render(text)
	}
	row := func(label string, value *string) string {
		val := "-"
		if value != nil {
			val = *value
		}
		if opts.Plain {
			return fmt.Sprintf("%-14s%s", label, val)
		}
		return labelStyle.Render(label) + val
	}

	lines := []string{
		style(titleStyle, "Key "+v.Fingerprint),
		row("Name", v.UserName),
		row("User ID", v.UserID),
		row("Created", v.KeyCreation),
		row("Expires", v.KeyExpiration),
	}
	if !opts.Now.IsZero() && r.Expired(opts.Now) {
		lines[4] += " " + style(expiredStyle, "(expired)")
	}
	if v.SubKey != nil {
		lines = append(lines, row("Sub-key", v.SubKey), row("Sub expires", v.SubKeyExpiration))
	}
	out := strings.Join(lines, "\n")
	if opts.Plain {
		return out + "\n"
	}
	return blockStyle.Render(out)
}
