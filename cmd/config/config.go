package config

import (
	"fmt"

	"github.com/lsst-sqre/rsp-jupyter-extensions/cmd/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/spf13/cobra"
)

// ConfigCmd returns the parent command for config operations
func ConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Config subcommands",
	}

	c.AddCommand(getCmd(), setCmd(), showCmd())

	return c
}

func load(cmd *cobra.Command) (string, *config.Config, error) {
	home, err := cmd.Flags().GetString(types.FlagHome)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Init(home)
	return home, cfg, err
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the entire configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := load(cmd)
			if err != nil {
				return err
			}

			data, err := cfg.Export()
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get a config value",
		Long: `Get a config value by key. Use dot notation for nested values.

Examples:
  rsp-tutorials config get repo_specs
  rsp-tutorials config get api_config.port
  rsp-tutorials config get stash_config`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := load(cmd)
			if err != nil {
				return err
			}

			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a config value",
		Long: `Set a config value by key. Use dot notation for nested values and
commas to separate list items.

Examples:
  rsp-tutorials config set image_spec sciplat-lab:w_2025_10
  rsp-tutorials config set api_config.port 8080
  rsp-tutorials config set api_config.allowed_origins https://data.lsst.cloud`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			home, cfg, err := load(cmd)
			if err != nil {
				return err
			}

			cfg, err = cfg.Set(key, value)
			if err != nil {
				return err
			}

			err = config.WriteConfigFile(home, cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", key, value)
			return err
		},
	}
}
