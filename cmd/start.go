package cmd

import (
	"github.com/lsst-sqre/rsp-jupyter-extensions/cmd/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/core"
	"github.com/spf13/cobra"
)

func StartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Starts the tutorials API",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := cmd.Flags().GetString(types.FlagHome)
			if err != nil {
				return err
			}

			app, err := core.NewApp(home)
			if err != nil {
				return err
			}

			return app.Start()
		},
	}
}
