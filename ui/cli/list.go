// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toeirei/gpgkeys/internal/gpg"
	"github.com/toeirei/gpgkeys/internal/gpgkey"
	"github.com/toeirei/gpgkeys/internal/i18n"
	"github.com/toeirei/gpgkeys/internal/logging"
	"github.com/toeirei/gpgkeys/util/slicest"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [pattern]",
		Short: i18n.T("list.short"),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			recs, err := gpg.ListRecords(ctx, newRunner(gpgOptions()), pattern)
			if err != nil && !errors.Is(err, gpgkey.ErrMalformedInput) {
				return err
			}
			return writeRecords(cmd, recs, err)
		},
	}
}

func newShowCmd() *cobra.Command {
	var copyFP bool
	cmd := &cobra.Command{
		Use:   "show <fingerprint|sub-key>",
		Short: i18n.T("show.short"),
		Long:  i18n.T("show.long"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			recs, err := gpg.ListRecords(ctx, newRunner(gpgOptions()), "")
			if err != nil && !errors.Is(err, gpgkey.ErrMalformedInput) {
				return err
			}
			rec, ok := findRecord(recs, args[0])
			if !ok {
				return errors.New(i18n.T("error.not_found", args[0]))
			}
			if err := writeRecords(cmd, []gpgkey.KeyRecord{rec}, nil); err != nil {
				return err
			}
			if copyFP {
				if err := copyToClipboard(rec.Fingerprint()); err != nil {
					return errors.New(i18n.T("error.clipboard", err))
				}
				logging.Infof("%s", i18n.T("info.copied", rec.Fingerprint()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyFP, "copy", false, i18n.T("flag.copy"))
	return cmd
}

// findRecord matches id against fingerprints first, then sub-key IDs. A
// shorter id matches the tail of a longer key ID.
func findRecord(recs []gpgkey.KeyRecord, id string) (gpgkey.KeyRecord, bool) {
	id = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(id), "0x"))
	if id == "" {
		return gpgkey.KeyRecord{}, false
	}
	matches := func(candidate string) bool {
		return strings.HasSuffix(strings.ToUpper(candidate), id)
	}
	if r, ok := slicest.Find(recs, func(r gpgkey.KeyRecord) bool { return matches(r.Fingerprint()) }); ok {
		return r, true
	}
	return slicest.Find(recs, func(r gpgkey.KeyRecord) bool {
		sk, ok := r.SubKey()
		return ok && matches(sk.ID)
	})
}
