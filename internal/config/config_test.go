package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var credentialEnv = []string{
	"ADVISOR_CLIENT_ID", "AZURE_CLIENT_ID", "ARM_CLIENT_ID",
	"ADVISOR_SECRET", "AZURE_CLIENT_SECRET", "ARM_CLIENT_SECRET",
	"ADVISOR_TENANT", "AZURE_TENANT_ID", "ARM_TENANT_ID",
	"ADVISOR_SUBSCRIPTION_ID", "AZURE_SUBSCRIPTION_ID", "ARM_SUBSCRIPTION_ID",
	"ADVISOR_THRESHOLD", "ADVISOR_EXCLUDE", "ADVISOR_CLOUD", "ADVISOR_VERIFY",
	"ADVISOR_RESOURCE_GROUP", "ADVISOR_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range credentialEnv {
		t.Setenv(key, "")
	}
}

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	flags := Flags("advisor-threshold")
	require.NoError(t, flags.Parse(args))
	return Load(flags)
}

func TestLoadFromFlags(t *testing.T) {
	clearEnv(t)
	cfg, err := load(t,
		"--client-id", "app",
		"--secret", "s3cret",
		"--tenant", "contoso",
		"--subscription-id", "sub",
		"--threshold", "5",
		"--exclude",
		"--resource-group", "web-rg",
		"--verify",
	)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		ClientID:       "app",
		Secret:         "s3cret",
		Tenant:         "contoso",
		SubscriptionID: "sub",
		Threshold:      5,
		Exclude:        true,
		ResourceGroup:  "web-rg",
		Cloud:          "AzurePublic",
		Verify:         true,
		LogLevel:       "info",
	}, cfg)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := load(t, "--client-id", "app", "--secret", "s", "--tenant", "t", "--subscription-id", "sub")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Threshold)
	assert.False(t, cfg.Exclude)
	assert.False(t, cfg.Verify)
	assert.Equal(t, "", cfg.ResourceGroup)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_CLIENT_ID", "azure-app")
	t.Setenv("ARM_CLIENT_ID", "arm-app")
	t.Setenv("ARM_CLIENT_SECRET", "arm-secret")
	t.Setenv("ADVISOR_TENANT", "advisor-tenant")
	t.Setenv("AZURE_TENANT_ID", "azure-tenant")
	t.Setenv("AZURE_SUBSCRIPTION_ID", "azure-sub")
	t.Setenv("ADVISOR_THRESHOLD", "15")
	t.Setenv("ADVISOR_EXCLUDE", "true")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "azure-app", cfg.ClientID)
	assert.Equal(t, "arm-secret", cfg.Secret)
	assert.Equal(t, "advisor-tenant", cfg.Tenant)
	assert.Equal(t, "azure-sub", cfg.SubscriptionID)
	assert.Equal(t, 15, cfg.Threshold)
	assert.True(t, cfg.Exclude)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_CLIENT_ID", "env-app")
	t.Setenv("AZURE_CLIENT_SECRET", "env-secret")
	t.Setenv("AZURE_TENANT_ID", "env-tenant")
	t.Setenv("AZURE_SUBSCRIPTION_ID", "env-sub")
	t.Setenv("ADVISOR_THRESHOLD", "15")

	cfg, err := load(t, "--subscription-id", "flag-sub", "--threshold", "10")
	require.NoError(t, err)
	assert.Equal(t, "env-app", cfg.ClientID)
	assert.Equal(t, "flag-sub", cfg.SubscriptionID)
	assert.Equal(t, 10, cfg.Threshold)
}

func TestLoadFromConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "advisor.yaml")
	content := []byte(`client_id: file-app
secret: file-secret
tenant: file-tenant
subscription_id: file-sub
threshold: 100
exclude: true
cloud: AzureChina
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("ADVISOR_THRESHOLD", "5")

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "file-app", cfg.ClientID)
	assert.Equal(t, "file-sub", cfg.SubscriptionID)
	// environment wins over the file
	assert.Equal(t, 5, cfg.Threshold)
	assert.True(t, cfg.Exclude)

	cloudConfig, err := cfg.CloudConfig()
	require.NoError(t, err)
	assert.Equal(t, cloud.AzureChina, cloudConfig)
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	_, err := load(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadReportsAllMissingFields(t *testing.T) {
	clearEnv(t)
	_, err := load(t, "--cloud", "Mars")
	require.Error(t, err)
	for _, msg := range []string{
		"client_id is required",
		"secret is required",
		"tenant is required",
		"subscription_id is required",
		`unknown cloud "Mars"`,
	} {
		assert.Contains(t, err.Error(), msg)
	}
}

func TestCloudConfig(t *testing.T) {
	for name, want := range map[string]cloud.Configuration{
		"":                cloud.AzurePublic,
		"azurepublic":     cloud.AzurePublic,
		"AzureGovernment": cloud.AzureGovernment,
	} {
		got, err := (&Config{Cloud: name}).CloudConfig()
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
