package cmd

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/lsst-sqre/rsp-jupyter-extensions/cmd/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/lsst-sqre/rsp-jupyter-extensions/materialize"
	"github.com/lsst-sqre/rsp-jupyter-extensions/network"
	"github.com/lsst-sqre/rsp-jupyter-extensions/source"
	"github.com/lsst-sqre/rsp-jupyter-extensions/tutorials"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const flagRebuild = "rebuild"

func environment(cmd *cobra.Command) (*config.Environment, error) {
	home, err := cmd.Flags().GetString(types.FlagHome)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Init(home)
	if err != nil {
		return nil, err
	}
	return cfg.Environment()
}

func MenuCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "menu",
		Short: "Prints the tutorials menu as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := environment(cmd)
			if err != nil {
				return err
			}
			rebuild, err := cmd.Flags().GetBool(flagRebuild)
			if err != nil {
				return err
			}

			menu := tutorials.NewMenu(env, source.NewGitCloner(env.CloneTimeout))
			get := menu.Hierarchy
			if rebuild {
				get = menu.Rebuild
			}
			h, err := get(cmd.Context())
			if err != nil {
				return err
			}

			return writeIndented(cmd.OutOrStdout(), h.ToPrimitive())
		},
	}
	c.Flags().Bool(flagRebuild, false, "ignore the stash and rebuild the menu")
	return c
}

func CopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy [entry-json]",
		Short: "Materializes one menu entry into the home directory",
		Long: `Materializes one menu entry, given in its JSON form, and prints where it went.

Example:
  rsp-tutorials copy '{"action": "copy", "disposition": "prompt", "parent": null, "src": "/opt/hello.ipynb", "dest": "notebooks/hello.ipynb"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p map[string]any
			err := json.Unmarshal([]byte(args[0]), &p)
			if err != nil {
				return fmt.Errorf("entry is not a JSON object: %w", err)
			}

			env, err := environment(cmd)
			if err != nil {
				return err
			}

			r := materialize.NewResolver(env.Home, network.NewTransfer(env.FetchTimeout))
			g, err := r.Resolve(cmd.Context(), p)
			if err != nil {
				return err
			}

			switch g.Status {
			case materialize.StatusConflict:
				return fmt.Errorf("destination already exists, retry with disposition overwrite or abort")
			case materialize.StatusAbandoned:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "destination exists, nothing copied")
				return err
			}
			return writeIndented(cmd.OutOrStdout(), map[string]string{"dest": g.Dest})
		},
	}
}

func writeIndented(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
