package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"LipeCore/pkg/lipe"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	api     string
	token   string
	tenant  string
	email   string
	timeout time.Duration
}

// NewRootCmd builds the lipe-cli command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "lipe-cli",
		Short: "Command line client for LIPE Core",
		Long: `A thin client for the LIPE Core forecasting API.

Connection settings default to LIPE_API_BASE, HIS_API_TOKEN,
HIS_TENANT_ID and HIS_USER_EMAIL; flags take precedence.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.api, "api", "", "API base URL (default $LIPE_API_BASE or "+lipe.DefaultBaseURL+")")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (default $HIS_API_TOKEN)")
	root.PersistentFlags().StringVar(&opts.tenant, "tenant", "", "tenant id header (default $HIS_TENANT_ID)")
	root.PersistentFlags().StringVar(&opts.email, "email", "", "user email header (default $HIS_USER_EMAIL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", lipe.DefaultTimeout, "request timeout")

	root.AddCommand(
		newPingCmd(opts),
		newForecastCmd(opts),
		newStrategyCmd(opts),
		newShareCmd(opts),
		newStatusCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *globalOptions) client() *lipe.Client {
	cfg := lipe.ConfigFromEnv()
	if o.api != "" {
		cfg.BaseURL = o.api
	}
	if o.token != "" {
		cfg.Token = o.token
	}
	if o.tenant != "" {
		cfg.TenantID = o.tenant
	}
	if o.email != "" {
		cfg.UserEmail = o.email
	}
	cfg.Timeout = o.timeout
	return lipe.New(cfg)
}

func (o *globalOptions) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout+time.Second)
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
