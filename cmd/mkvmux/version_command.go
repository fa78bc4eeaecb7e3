package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the mkvmerge version banner",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return fmt.Errorf("create mkvmerge client: %w", err)
			}
			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}
			banner, err := client.Version(runCtx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), banner)
			return nil
		},
	}
}
