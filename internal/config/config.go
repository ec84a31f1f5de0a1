package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

const (
	defaultThreshold = 20
	defaultCloud     = "AzurePublic"
	defaultLogLevel  = "info"
	envPrefix        = "ADVISOR"
)

// Config is everything the advisor-threshold command needs for one run.
type Config struct {
	ClientID       string `mapstructure:"client_id"`
	Secret         string `mapstructure:"secret"`
	Tenant         string `mapstructure:"tenant"`
	SubscriptionID string `mapstructure:"subscription_id"`
	Threshold      int    `mapstructure:"threshold"`
	Exclude        bool   `mapstructure:"exclude"`
	ResourceGroup  string `mapstructure:"resource_group"`
	Cloud          string `mapstructure:"cloud"`
	Verify         bool   `mapstructure:"verify"`
	LogLevel       string `mapstructure:"log_level"`
}

// environment variables read for each key, after the ADVISOR_ prefixed one
var envFallbacks = map[string][]string{
	"client_id":       {"AZURE_CLIENT_ID", "ARM_CLIENT_ID"},
	"secret":          {"AZURE_CLIENT_SECRET", "ARM_CLIENT_SECRET"},
	"tenant":          {"AZURE_TENANT_ID", "ARM_TENANT_ID"},
	"subscription_id": {"AZURE_SUBSCRIPTION_ID", "ARM_SUBSCRIPTION_ID"},
}

var clouds = map[string]cloud.Configuration{
	"azurepublic":     cloud.AzurePublic,
	"azurechina":      cloud.AzureChina,
	"azuregovernment": cloud.AzureGovernment,
}

// Flags returns the command line flags understood by Load.
func Flags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "Path to a config file (yaml, json or toml)")
	flags.String("client-id", "", "Application (client) ID of the service principal")
	flags.String("secret", "", "Client secret of the service principal")
	flags.String("tenant", "", "Tenant ID of the organization")
	flags.String("subscription-id", "", "Subscription whose Advisor configuration is updated")
	flags.Int("threshold", defaultThreshold, "Low CPU threshold in percent")
	flags.Bool("exclude", false, "Exclude the scope from Advisor recommendations")
	flags.String("resource-group", "", "Only set the exclusion of this resource group; the threshold applies to subscriptions")
	flags.String("cloud", defaultCloud, "Azure cloud: AzurePublic, AzureChina or AzureGovernment")
	flags.Bool("verify", false, "Read the configuration back after writing it")
	flags.String("log-level", defaultLogLevel, "Log level: trace, debug, info, warn or error")
	return flags
}

// Load resolves the configuration from flags, environment, an optional config
// file and defaults, in that order of precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, fallbacks := range envFallbacks {
		names := append([]string{envPrefix + "_" + strings.ToUpper(key)}, fallbacks...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("error binding environment for %s: %w", key, err)
		}
	}

	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		err = multierr.Append(err, v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f))
	})
	if err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or unknown setting at once. The threshold is
// left for the service to judge.
func (c *Config) Validate() error {
	var err error
	if c.ClientID == "" {
		err = multierr.Append(err, errors.New("client_id is required"))
	}
	if c.Secret == "" {
		err = multierr.Append(err, errors.New("secret is required"))
	}
	if c.Tenant == "" {
		err = multierr.Append(err, errors.New("tenant is required"))
	}
	if c.SubscriptionID == "" {
		err = multierr.Append(err, errors.New("subscription_id is required"))
	}
	if _, cloudErr := c.CloudConfig(); cloudErr != nil {
		err = multierr.Append(err, cloudErr)
	}
	return err
}

// CloudConfig maps the cloud name to its azcore configuration.
func (c *Config) CloudConfig() (cloud.Configuration, error) {
	name := c.Cloud
	if name == "" {
		name = defaultCloud
	}
	cloudConfig, ok := clouds[strings.ToLower(name)]
	if !ok {
		return cloud.Configuration{}, fmt.Errorf("unknown cloud %q", c.Cloud)
	}
	return cloudConfig, nil
}
