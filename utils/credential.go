package utils

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"go.uber.org/multierr"
)

const (
	ENV_CLIENT_ID           = "AZURE_CLIENT_ID"
	ENV_CLIENT_SECRET       = "AZURE_CLIENT_SECRET"
	ENV_TENANT_ID           = "AZURE_TENANT_ID"
	ENV_SUBSCRIPTION_ID     = "AZURE_SUBSCRIPTION_ID"
	ENV_ARM_CLIENT_ID       = "ARM_CLIENT_ID"
	ENV_ARM_CLIENT_SECRET   = "ARM_CLIENT_SECRET"
	ENV_ARM_TENANT_ID       = "ARM_TENANT_ID"
	ENV_ARM_SUBSCRIPTION_ID = "ARM_SUBSCRIPTION_ID"
)

// GetCredential builds a client secret credential from the service principal found
// in the AZURE_* environment variables, falling back to ARM_*.
func GetCredential(opts azcore.ClientOptions) (azcore.TokenCredential, error) {
	return NewClientSecretCredential(
		GetEnv(ENV_TENANT_ID, ENV_ARM_TENANT_ID),
		GetEnv(ENV_CLIENT_ID, ENV_ARM_CLIENT_ID),
		GetEnv(ENV_CLIENT_SECRET, ENV_ARM_CLIENT_SECRET),
		opts,
	)
}

// NewClientSecretCredential checks that every part of the service principal is
// present and hands it to azidentity.
func NewClientSecretCredential(tenantID, clientID, secret string, opts azcore.ClientOptions) (azcore.TokenCredential, error) {
	var err error
	if tenantID == "" {
		err = multierr.Append(err, errors.New("missing tenant ID"))
	}
	if clientID == "" {
		err = multierr.Append(err, errors.New("missing client ID"))
	}
	if secret == "" {
		err = multierr.Append(err, errors.New("missing client secret"))
	}
	if err != nil {
		return nil, fmt.Errorf("invalid service principal: %w", err)
	}
	return azidentity.NewClientSecretCredential(tenantID, clientID, secret, &azidentity.ClientSecretCredentialOptions{
		ClientOptions: opts,
	})
}

// SubscriptionID returns the subscription configured in the environment.
func SubscriptionID() (string, error) {
	subscriptionID := GetEnv(ENV_SUBSCRIPTION_ID, ENV_ARM_SUBSCRIPTION_ID)
	if subscriptionID == "" {
		return "", fmt.Errorf("Environment variable `%s` or `%s` must be provided", ENV_SUBSCRIPTION_ID, ENV_ARM_SUBSCRIPTION_ID)
	}
	return subscriptionID, nil
}
