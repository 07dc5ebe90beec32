package commands

import (
	"fmt"
	"strconv"
	"strings"

	"LipeCore/internal/domain/models"

	"github.com/spf13/cobra"
)

func newStrategyCmd(opts *globalOptions) *cobra.Command {
	var (
		arena    string
		horizon  int
		lookback int
		enter    []string
		exit     []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "strategy SYMBOL",
		Short: "Backtest entry/exit rules over recent history",
		Long: `Backtest a rule set. Rules are written FIELD>=VALUE or FIELD<=VALUE
where FIELD is edge, entropy or drawdown. All --enter rules must hold
to open a position; any --exit rule closes it.

  lipe-cli strategy BTCUSDT --enter 'edge>=0.5' --exit 'entropy>=0.8'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enterRules, err := parseRules(enter)
			if err != nil {
				return err
			}
			exitRules, err := parseRules(exit)
			if err != nil {
				return err
			}

			ctx, cancel := opts.context()
			defer cancel()

			res, err := opts.client().EvaluateStrategy(ctx, models.StrategySpec{
				Arena:        arena,
				Symbol:       args[0],
				Horizon:      horizon,
				LookbackDays: lookback,
				Enter:        enterRules,
				Exit:         exitRules,
			})
			if err != nil {
				return fmt.Errorf("strategy: %w", err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, res)
			}
			m := res.Metrics
			fmt.Fprintf(out, "trades=%d  hit_rate=%.2f%%  roi=%.2f%%  max_dd=%.2f%%  points=%d\n",
				m.Trades, m.HitRate*100, m.ROI*100, m.MaxDD*100, len(res.EquityCurve))
			return nil
		},
	}

	cmd.Flags().StringVar(&arena, "arena", "crypto", "market arena")
	cmd.Flags().IntVar(&horizon, "horizon", 5, "forecast horizon in days")
	cmd.Flags().IntVar(&lookback, "lookback", 180, "backtest window in days (1-730)")
	cmd.Flags().StringArrayVar(&enter, "enter", nil, "entry rule, repeatable (e.g. edge>=0.5)")
	cmd.Flags().StringArrayVar(&exit, "exit", nil, "exit rule, repeatable (e.g. entropy>=0.8)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON result")
	return cmd
}

func parseRules(in []string) ([]models.Rule, error) {
	out := make([]models.Rule, 0, len(in))
	for _, s := range in {
		r, err := parseRule(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// parseRule reads "edge>=0.5" style expressions.
func parseRule(s string) (models.Rule, error) {
	s = strings.ReplaceAll(s, " ", "")
	var op string
	switch {
	case strings.Contains(s, models.OpGTE):
		op = models.OpGTE
	case strings.Contains(s, models.OpLTE):
		op = models.OpLTE
	default:
		return models.Rule{}, fmt.Errorf("rule %q: operator must be >= or <=", s)
	}
	field, raw, _ := strings.Cut(s, op)
	field = strings.ToLower(field)
	switch field {
	case models.FieldEdge, models.FieldEntropy, models.FieldDrawdown:
	default:
		return models.Rule{}, fmt.Errorf("rule %q: unknown field %q", s, field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.Rule{}, fmt.Errorf("rule %q: bad value: %w", s, err)
	}
	return models.Rule{Field: field, Op: op, Value: v}, nil
}
