package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			healthy := a.runner.CheckHealth(cmd.Context())
			if ctx.flags.json {
				if err := writeJSON(cmd, map[string]any{"api_url": a.cfg.APIURL, "healthy": healthy}); err != nil {
					return err
				}
			} else if healthy {
				fmt.Fprintf(cmd.OutOrStdout(), "Service at %s is healthy\n", a.cfg.APIURL)
			}
			if !healthy {
				return fmt.Errorf("service at %s is unreachable", a.cfg.APIURL)
			}
			return nil
		},
	}
}
