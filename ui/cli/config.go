// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toeirei/gpgkeys/internal/config"
	"github.com/toeirei/gpgkeys/internal/i18n"
	"github.com/toeirei/gpgkeys/internal/logging"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: i18n.T("config.short"),
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigLanguagesCmd())
	return cmd
}

// newConfigInitCmd writes the effective configuration, flags included, to
// gpgkeys.yaml so later runs pick it up.
func newConfigInitCmd() *cobra.Command {
	var system, force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: i18n.T("config.init.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath(system)
			if err != nil {
				return errors.New(i18n.T("error.config_write", err))
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(i18n.T("error.config_exists", path))
			}
			written, err := config.WriteConfigFile(&appConfig, system)
			if err != nil {
				return errors.New(i18n.T("error.config_write", err))
			}
			logging.Debugf("wrote %s", written)
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("info.config_written", written))
			return nil
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, i18n.T("flag.system"))
	cmd.Flags().BoolVar(&force, "force", false, i18n.T("flag.force"))
	return cmd
}

func newConfigLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: i18n.T("config.languages.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := i18n.GetAvailableLocales()
			for _, tag := range i18n.Locales() {
				mark := " "
				if tag == i18n.GetLang() {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-4s %s\n", mark, tag, names[tag])
			}
			return nil
		},
	}
}
