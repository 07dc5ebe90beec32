package commands

import (
	"fmt"

	"LipeCore/internal/domain/models"
	"LipeCore/pkg/lipe"

	"github.com/spf13/cobra"
)

func newShareCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Create and read share links",
	}
	cmd.AddCommand(newShareCreateCmd(opts), newShareGetCmd(opts))
	return cmd
}

func newShareCreateCmd(opts *globalOptions) *cobra.Command {
	var (
		arena   string
		horizon int
		ttl     int
	)

	cmd := &cobra.Command{
		Use:   "create SYMBOL",
		Short: "Create a share link for a forecast view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()

			link, err := opts.client().CreateShare(ctx, models.SharePayload{
				Arena:    arena,
				Symbol:   args[0],
				Horizon:  horizon,
				TTLHours: ttl,
			})
			if err != nil {
				return fmt.Errorf("share create: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token=%s  url=%s  expires_in_hours=%d\n", link.Token, link.URL, link.ExpiresInHours)
			return nil
		},
	}

	cmd.Flags().StringVar(&arena, "arena", "crypto", "market arena")
	cmd.Flags().IntVar(&horizon, "horizon", 5, "forecast horizon in days")
	cmd.Flags().IntVar(&ttl, "ttl", 24, "link lifetime in hours")
	return cmd
}

func newShareGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get TOKEN",
		Short: "Read a shared payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()

			p, err := opts.client().GetShare(ctx, args[0])
			if lipe.IsNotFound(err) {
				return fmt.Errorf("share %s: not found or expired", args[0])
			}
			if err != nil {
				return fmt.Errorf("share get: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}
