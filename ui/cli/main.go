// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, its persistent flags and the shared
// configuration that every subcommand reads.

package cli

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/toeirei/gpgkeys/internal/config"
	"github.com/toeirei/gpgkeys/internal/gpg"
	"github.com/toeirei/gpgkeys/internal/gpgkey"
	"github.com/toeirei/gpgkeys/internal/i18n"
	"github.com/toeirei/gpgkeys/internal/logging"
	"github.com/toeirei/gpgkeys/internal/render"
)

var cfgFile string

var appConfig config.Config

// newRunner builds the gpg runner for list and show. Tests swap it.
var newRunner = func(opts gpg.Options) gpg.Runner {
	return gpg.NewExecRunner(opts)
}

// copyToClipboard is swapped in tests; CI machines have no clipboard.
var copyToClipboard = clipboard.WriteAll

// renderOptions picks styling for the command output.
var renderOptions = func(w io.Writer) render.Options {
	return render.AutoOptions(w)
}

// Execute runs the CLI entrypoint. The main package calls this and handles
// the process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates a fresh command tree. Tests call it once per case.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gpgkeys",
		Short:         i18n.T("root.short"),
		Long:          i18n.T("root.long"),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupConfig(cmd)
		},
	}

	applyDefaultFlags(cmd)

	cmd.AddCommand(
		newParseCmd(),
		newListCmd(),
		newShowCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

func applyDefaultFlags(cmd *cobra.Command) {
	d := config.Defaults()
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", i18n.T("flag.config"))
	pf.StringP("format", "o", d["format"].(string), i18n.T("flag.format"))
	pf.String("gpg.binary", d["gpg.binary"].(string), i18n.T("flag.gpg_binary"))
	pf.String("gpg.homedir", "", i18n.T("flag.gpg_homedir"))
	pf.String("language", d["language"].(string), i18n.T("flag.language", strings.Join(i18n.Locales(), ", ")))
	pf.String("log.level", d["log.level"].(string), i18n.T("flag.log_level"))
	pf.BoolP("verbose", "v", false, i18n.T("flag.verbose"))
	pf.Duration("timeout", d["timeout"].(time.Duration), i18n.T("flag.timeout"))
}

// setupConfig loads configuration and applies the language and log settings.
func setupConfig(cmd *cobra.Command) error {
	c, err := config.LoadConfig[config.Config](cmd, config.Defaults(), &cfgFile)
	if err != nil {
		return errors.New(i18n.T("error.config", err))
	}
	appConfig = c

	if locales := i18n.Locales(); !slices.Contains(locales, appConfig.Language) {
		return errors.New(i18n.T("error.language", appConfig.Language, strings.Join(locales, ", ")))
	}
	i18n.SetLang(appConfig.Language)
	logging.SetOutput(cmd.ErrOrStderr())
	if err := logging.SetLevel(appConfig.Log.Level); err != nil {
		logging.Warnf("%v", err)
	}
	if appConfig.Verbose {
		logging.SetDebug(true)
	}
	logging.Debugf("config: format=%s gpg=%s language=%s", appConfig.Format, appConfig.Gpg.Binary, i18n.GetLang())
	return nil
}

func gpgOptions() gpg.Options {
	return gpg.Options{
		Binary:    appConfig.Gpg.Binary,
		HomeDir:   appConfig.Gpg.HomeDir,
		ExtraArgs: appConfig.Gpg.ExtraArgs,
	}
}

// commandContext bounds gpg invocations by the configured timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if appConfig.Timeout > 0 {
		return context.WithTimeout(ctx, appConfig.Timeout)
	}
	return context.WithCancel(ctx)
}

// writeRecords renders records and turns a partial parse failure into the
// command error after the good records were printed.
func writeRecords(cmd *cobra.Command, recs []gpgkey.KeyRecord, parseErr error) error {
	if len(recs) == 0 && parseErr == nil {
		return errors.New(i18n.T("error.no_keys"))
	}
	out := cmd.OutOrStdout()
	if err := render.Write(out, appConfig.Format, recs, renderOptions(out)); err != nil {
		return err
	}
	logging.Debugf("%s", i18n.T("info.key_count", len(recs)))
	if parseErr != nil {
		return &localizedError{
			msg: i18n.T("error.parse", strings.ReplaceAll(parseErr.Error(), "\n", "; ")),
			err: parseErr,
		}
	}
	return nil
}

// localizedError shows a translated message but keeps the cause reachable
// for errors.Is.
type localizedError struct {
	msg string
	err error
}

func (e *localizedError) Error() string { return e.msg }
func (e *localizedError) Unwrap() error { return e.err }
