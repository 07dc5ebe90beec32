package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newForecastCmd(opts *globalOptions) *cobra.Command {
	var (
		arena   string
		horizon int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "forecast SYMBOL",
		Short: "Forecast a symbol's daily close",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()

			res, err := opts.client().Forecast(ctx, arena, args[0], horizon)
			if err != nil {
				return fmt.Errorf("forecast: %w", err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, res)
			}

			fmt.Fprintf(out, "%s  regime=%v  entropy=%.4f  edge=%.4f  source=%v\n",
				args[0], res.Meta["regime"], res.Metrics.Entropy, res.Metrics.Edge, res.Meta["data_source"])
			fmt.Fprintf(out, "%-22s %12s %12s %12s\n", "Date", "Q10", "YHat", "Q90")
			fmt.Fprintln(out, strings.Repeat("-", 61))
			for _, p := range res.Forecast.Points {
				fmt.Fprintf(out, "%-22s %12.2f %12.2f %12.2f\n", p.TS, p.Q10, p.YHat, p.Q90)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&arena, "arena", "crypto", "market arena")
	cmd.Flags().IntVar(&horizon, "horizon", 5, "days to forecast (1-30)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON result")
	return cmd
}
