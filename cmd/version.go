package cmd

import (
	"fmt"

	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/spf13/cobra"
)

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit: %s\n", config.Version(), config.Commit())
			return err
		},
	}
}
