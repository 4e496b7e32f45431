package main

import (
	"fmt"

	"github.com/858277721c/Kalle/uri"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <base> <location>",
		Short: "Resolve a location against a base URL",
		Long: `Resolve a location against a base URL with the same rules the URL
builder uses. A leading run of ../ also drops the last base segment, and
the query and fragment always come from the location.

Examples:
  kalle resolve http://host/a/b/c?x=1 /d/e
  kalle resolve http://host/a/b/c/d ../../x?q=2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := uri.Parse(args[0])
			if err != nil {
				return err
			}

			resolved, err := base.Resolve(args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return nil
		},
	}
}
