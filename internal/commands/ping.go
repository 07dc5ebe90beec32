package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()

			c := opts.client()
			h, ts, err := c.Health(ctx)
			if err != nil {
				return fmt.Errorf("ping %s: %w", c.BaseURL(), err)
			}
			if !h.OK {
				return fmt.Errorf("ping %s: service reported not ok", c.BaseURL())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok  %s  %s  (server time %s)\n", c.BaseURL(), h.Name, ts.Format("2006-01-02 15:04:05Z07:00"))
			return nil
		},
	}
}
