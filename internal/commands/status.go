package commands

import (
	"fmt"
	"sort"
	"strings"

	"LipeCore/internal/domain/models"

	"github.com/spf13/cobra"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show published SLO, accuracy and plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()

			c := opts.client()
			slo, err := c.PublicSLO(ctx)
			if err != nil {
				return fmt.Errorf("status slo: %w", err)
			}
			acc, err := c.PublicAccuracy(ctx)
			if err != nil {
				return fmt.Errorf("status accuracy: %w", err)
			}
			plans, err := c.PublicPlans(ctx)
			if err != nil {
				return fmt.Errorf("status plans: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  p95_forecast=%dms  uptime_7d=%.3f\n", slo.Service, slo.P95MsForecast, slo.Uptime7d)
			fmt.Fprintf(out, "accuracy  crypto[%s]  sports[%s]  lottery[%s]\n",
				formatAccuracy(acc.Crypto), formatAccuracy(acc.Sports), formatAccuracy(acc.Lottery))
			fmt.Fprintf(out, "%-8s %-10s %10s  %s\n", "Plan", "Name", "USD/month", "Features")
			fmt.Fprintln(out, strings.Repeat("-", 60))
			for _, p := range plans.Plans {
				fmt.Fprintf(out, "%-8s %-10s %10.2f  %s\n", p.ID, p.Name, p.PriceUSDMonth, strings.Join(p.Features, ", "))
			}
			return nil
		},
	}
}

func formatAccuracy(a models.ArenaAccuracy) string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.2f", k, a[k])
	}
	return strings.Join(parts, " ")
}
