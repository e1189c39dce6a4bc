package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/iamdanielyin/dbrec/adapter"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dbcheck",
		Short:        "Inspect which database adapters this binary can reach",
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)

	adaptersCmd := &cobra.Command{
		Use:   "adapters",
		Short: "Print the availability report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := json.MarshalIndent(adapter.AvailableAdapters(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	availableCmd := &cobra.Command{
		Use:   "available <name>...",
		Short: "Report whether each adapter name, synonym or pdo_<driver> is available",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", name, adapter.IsAvailable(name))
			}
			return nil
		},
	}

	var (
		configFile string
		envFile    string
		pairs      []string
		prefix     string
	)
	checkCmd := &cobra.Command{
		Use:   "check <adapter>",
		Short: "Try to connect with the given options and report the failure, if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(args[0], configFile, envFile, pairs)
			if err != nil {
				return err
			}
			if err := adapter.Check(args[0], opts, prefix); err != nil {
				return errors.Errorf("%s: %v", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
	checkCmd.Flags().StringVarP(&configFile, "config", "c", "", "TOML file with [adapters.<name>] option tables")
	checkCmd.Flags().StringVarP(&envFile, "env-file", "e", "", ".env file; DBREC_* keys become options")
	checkCmd.Flags().StringArrayVarP(&pairs, "option", "o", nil, "adapter option as key=value (repeatable)")
	checkCmd.Flags().StringVar(&prefix, "prefix", "", "adapter registry prefix")

	registeredCmd := &cobra.Command{
		Use:   "registered",
		Short: "List the registered adapter names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			names := lo.Map(adapter.DefaultFactory().Registered(), func(n string, _ int) string {
				return strings.TrimPrefix(n, adapter.DefaultPrefix)
			})
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
		},
	}

	rootCmd.AddCommand(adaptersCmd, availableCmd, checkCmd, registeredCmd)
	return rootCmd
}
