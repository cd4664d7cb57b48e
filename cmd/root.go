package cmd

import (
	"fmt"
	"os"

	"github.com/lsst-sqre/rsp-jupyter-extensions/cmd/config"
	"github.com/lsst-sqre/rsp-jupyter-extensions/cmd/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/logger"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	r := &cobra.Command{
		Use:   "rsp-tutorials",
		Short: "Serves the RSP tutorials menu and copies tutorials into the user's home.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := cmd.Flags().GetString(types.FlagLogLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
	}

	r.PersistentFlags().String(types.FlagHome, types.DefaultHome, "sets the service home directory")
	r.PersistentFlags().String(types.FlagLogLevel, types.DefaultLogLevel, "log level: debug, info, warn or error")

	r.AddCommand(StartCmd(), MenuCmd(), CopyCmd(), VersionCmd(), config.ConfigCmd())

	return r
}

func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
