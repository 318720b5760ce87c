// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/toeirei/gpgkeys/internal/gpg"
	"github.com/toeirei/gpgkeys/internal/gpgkey"
	"github.com/toeirei/gpgkeys/internal/i18n"
	"github.com/toeirei/gpgkeys/internal/logging"
)

// newParseCmd builds `gpgkeys parse [file|-]`, which parses listing text
// captured elsewhere.
func newParseCmd() *cobra.Command {
	var single bool
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: i18n.T("parse.short"),
		Long:  i18n.T("parse.long"),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			text, err := readInput(cmd, path)
			if err != nil {
				return errors.New(i18n.T("error.read_input", err))
			}

			if single {
				rec, err := gpgkey.Parse(text)
				if err != nil {
					return err
				}
				return writeRecords(cmd, []gpgkey.KeyRecord{rec}, nil)
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			recs, err := gpg.ListRecords(ctx, gpg.StaticRunner{Output: text}, "")
			if err != nil && !errors.Is(err, gpgkey.ErrMalformedInput) {
				return err
			}
			return writeRecords(cmd, recs, err)
		},
	}
	cmd.Flags().BoolVar(&single, "single", false, i18n.T("flag.single"))
	return cmd
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		logging.Debugf("reading listing from stdin")
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	logging.Debugf("reading listing from %s", path)
	data, err := os.ReadFile(path)
	return string(data), err
}
