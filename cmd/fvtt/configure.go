package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/config"
)

func newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: MsgConfigureShort,
		Long: `Read and write tool settings. Settings live in a TOML file under the
XDG config directory. The one setting every pack command needs is
dataPath, the Foundry user data directory.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting's value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Open()
			if err != nil {
				reportError("load settings", err)
				return nil
			}
			fmt.Println(cfg.Get(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting's value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Open()
			if err != nil {
				reportError("load settings", err)
				return nil
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				reportError(fmt.Sprintf("set %q", args[0]), err)
				return nil
			}
			return nil
		},
	})

	return cmd
}
