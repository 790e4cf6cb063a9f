package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/five82/mesonconfig/internal/app"
	"github.com/five82/mesonconfig/internal/kconfig"
	"github.com/five82/mesonconfig/internal/logtail"
)

func newDumpCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the parsed menu tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Config.Dump(cmd.OutOrStdout())
		},
	}
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse and validate the Kconfig file and saved values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			set := 0
			for _, opt := range s.Config.Options() {
				if opt.Value.IsSet() {
					set++
				}
			}
			title := s.Config.MainMenu()
			if title == "" {
				title = "(no mainmenu)"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d options, %d with values\n",
				s.Settings.KconfigFile, title, len(s.Config.Options()), set)
			return err
		},
	}
}

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the entries that are currently visible",
		Long: `List prints every visible entry, indented by menu depth. Options are
printed as NAME=value in the format of the output file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			tree, err := s.Config.VisibleTree(s.Config.Entries(), "")
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), tree, 0)
		},
	}
}

func writeTree(w io.Writer, nodes []kconfig.VisibleNode, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		var line string
		switch e := n.Entry.(type) {
		case *kconfig.Option:
			if e.Value.IsSet() {
				line = e.Name + "=" + e.Value.Format()
			} else {
				line = "# " + e.Name + " is not set"
			}
		case *kconfig.Menu:
			line = fmt.Sprintf("menu %q", e.Title)
		case *kconfig.Choice:
			line = fmt.Sprintf("choice %q", e.Prompt)
		case *kconfig.Comment:
			line = fmt.Sprintf("comment %q", e.Text)
		}
		if _, err := fmt.Fprintln(w, indent+line); err != nil {
			return err
		}
		if err := writeTree(w, n.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func newGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print the value of an option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			opt, ok := s.Config.FindOption(args[0])
			if !ok {
				return &kconfig.Error{Kind: kconfig.ErrUnknownOption, Msg: "unknown option " + args[0]}
			}
			if !opt.Value.IsSet() {
				return fmt.Errorf("option %s is not set", opt.Name)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), opt.Value.Format())
			return err
		},
	}
}

func newSetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME=VALUE...",
		Short: "Assign option values and save the output file",
		Long: `Set loads the output file when it exists, applies each assignment in
order and saves. Nothing is written if any assignment fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, arg := range args {
				name, value, ok := strings.Cut(arg, "=")
				if !ok || strings.TrimSpace(name) == "" {
					return fmt.Errorf("invalid assignment %q, want NAME=VALUE", arg)
				}
				if err := s.Store.Set(strings.TrimSpace(name), value); err != nil {
					return err
				}
			}
			if err := s.Store.Save(); err != nil {
				return err
			}
			s.Logger.Info(s.Store.Snapshot().Status)
			return nil
		},
	}
}

func newLogCmd(flags *rootFlags) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the end of the session log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.Settings(flags.options(nil))
			if err != nil {
				return err
			}
			if settings.LogFile == "" {
				return fmt.Errorf("no log file configured, set --log-file or log_file in the settings file")
			}
			minLevel, err := log.ParseLevel(level)
			if err != nil {
				return err
			}
			records, err := logtail.Tail(settings.LogFile, lines, logtail.AtLeast(minLevel))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range records {
				if _, err := fmt.Fprintln(out, r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of records to show")
	cmd.Flags().StringVar(&level, "level", "debug", "lowest level to show (debug, info, warn, error)")
	return cmd
}
