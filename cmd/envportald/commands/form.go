package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnrobert/envportal/internal/flow"
	"github.com/hnrobert/envportal/internal/tui"
)

func formCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "form <flow>",
		Short:     "Fill in one flow in the terminal",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"login", "signup", "forgotpassword", "passwordreset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := registry.Start(flow.Name(args[0]))
			if err != nil {
				return err
			}
			snap, err := tui.Run(ctrl)
			if err != nil {
				return err
			}
			if snap.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), snap.Message)
			}
			return nil
		},
	}
}
