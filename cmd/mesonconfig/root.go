package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/mesonconfig/internal/app"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	kconfig  string
	output   string
	settings string
	logFile  string
	verbose  bool
}

func (f *rootFlags) options(logOutput io.Writer) app.Options {
	return app.Options{
		SettingsPath: f.settings,
		KconfigFile:  f.kconfig,
		OutputFile:   f.output,
		LogFile:      f.logFile,
		Verbose:      f.verbose,
		LogOutput:    logOutput,
	}
}

// open starts a session whose logs go to the command's stderr.
func (f *rootFlags) open(cmd *cobra.Command) (*app.Session, error) {
	return app.Open(f.options(cmd.ErrOrStderr()))
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "mesonconfig",
		Short: "Menu-driven editor for Kconfig-style configuration",
		Long: `mesonconfig reads a Kconfig file, shows its options as nested menus and
writes the chosen values to a flat NAME=value file.

Run without a subcommand to start the interactive editor.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(flags.options(nil))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.kconfig, "kconfig", "k", "", "Kconfig file to read (default from settings, else ./Kconfig)")
	pf.StringVarP(&flags.output, "output", "o", "", "value file to load and save (default from settings, else ./.config)")
	pf.StringVar(&flags.settings, "settings", "", "settings file (default ~/.config/mesonconfig/config.toml)")
	pf.StringVar(&flags.logFile, "log-file", "", "append logs to this file")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newDumpCmd(flags),
		newCheckCmd(flags),
		newListCmd(flags),
		newGetCmd(flags),
		newSetCmd(flags),
		newLogCmd(flags),
	)
	return root
}
