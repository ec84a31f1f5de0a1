// Command advisor-threshold sets the Azure Advisor low CPU threshold of a
// subscription, or the exclusion flag of one of its resource groups.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/logicmonitor/advisor-config-sdk-go/api/configurations"
	"github.com/logicmonitor/advisor-config-sdk-go/internal/config"
	"github.com/logicmonitor/advisor-config-sdk-go/model"
	"github.com/logicmonitor/advisor-config-sdk-go/utils"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one invocation. opts are applied after the ones built from the
// configuration.
func run(args []string, opts ...configurations.Option) int {
	flags := config.Flags("advisor-threshold")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "advisor-threshold",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	logger.Debug("starting", "user_agent", utils.BuildUserAgent())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := setThreshold(ctx, cfg, logger, opts...); err != nil {
		var cfgErr *model.ConfigurationError
		if errors.As(err, &cfgErr) {
			logger.Error("failed to update advisor configuration", "kind", cfgErr.Kind.String(), "error", cfgErr.Err)
		} else {
			logger.Error("failed to update advisor configuration", "error", err)
		}
		return 1
	}
	return 0
}

func setThreshold(ctx context.Context, cfg *config.Config, logger hclog.Logger, extra ...configurations.Option) error {
	cloudConfig, err := cfg.CloudConfig()
	if err != nil {
		return err
	}

	opts := []configurations.Option{
		configurations.WithSubscriptionID(cfg.SubscriptionID),
		configurations.WithAuthentication(model.ServicePrincipal{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.Secret,
			TenantID:     cfg.Tenant,
		}),
		configurations.WithCloud(cloudConfig),
		configurations.WithLogger(logger),
	}
	if cfg.Verify {
		opts = append(opts, configurations.WithVerification())
	}
	opts = append(opts, extra...)

	advisor, err := configurations.NewAdvisorConfiguration(ctx, opts...)
	if err != nil {
		return err
	}
	defer advisor.Shutdown(ctx)

	if cfg.ResourceGroup != "" {
		resp, err := advisor.SetExclusionInResourceGroup(ctx, cfg.ResourceGroup, cfg.Exclude)
		if err != nil {
			return err
		}
		logger.Info("resource group exclusion updated",
			"subscription_id", resp.SubscriptionID,
			"resource_group", resp.ResourceGroup,
			"exclude", resp.Configuration.Exclude)
		return nil
	}

	resp, err := advisor.SetLowCPUThreshold(ctx, cfg.Threshold, cfg.Exclude)
	if err != nil {
		return err
	}
	logger.Info("low CPU threshold updated",
		"subscription_id", resp.SubscriptionID,
		"low_cpu_threshold", resp.Configuration.LowCPUThreshold,
		"exclude", resp.Configuration.Exclude)
	return nil
}
