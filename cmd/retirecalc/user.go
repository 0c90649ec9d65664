package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"retireplan/internal/gateway/adapters/provider/userdata"
	"retireplan/internal/gateway/config"
	"retireplan/internal/gateway/ports/provider"
	"retireplan/internal/gateway/resilience"
	pkgconfig "retireplan/pkg/config"
)

const providerServiceName = "user-data-provider"

func newUserCmd(c *cli) *cobra.Command {
	var (
		providerURL string
		timeout     time.Duration
		schedule    bool
	)

	cmd := &cobra.Command{
		Use:   "user <user_id>",
		Short: "Fetch a user record from the provider and compute the projection",
		Long: "Fetch a user record from the provider and compute the projection.\n" +
			"Provider settings are read from RETIREMENT_PROVIDER_* environment variables; flags override them.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("user_id must be an integer: %q", args[0])
			}

			ctx := c.context()
			cfg, err := pkgconfig.Load[config.ProviderConfig](ctx, "retirecalc", "")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("provider-url") {
				cfg.BaseURL = providerURL
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := userdata.NewClient(*cfg)
			if err != nil {
				return err
			}

			res := resilience.NewFromConfig(providerServiceName, *cfg, provider.ErrUserNotFound)
			svc, err := c.service(client, res)
			if err != nil {
				return err
			}

			resp, err := svc.GetProjection(ctx, userID, schedule)
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&providerURL, "provider-url", "http://localhost:9000/users", "User data provider base URL")
	flags.DurationVar(&timeout, "timeout", 5*time.Second, "Provider request timeout")
	flags.BoolVar(&schedule, "schedule", false, "Include the yearly contribution schedule")

	return cmd
}
