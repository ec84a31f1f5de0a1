package configurations

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/hashicorp/go-hclog"
	"github.com/logicmonitor/advisor-config-sdk-go/model"
)

type Option func(*AdvisorConfiguration) error

// WithSubscriptionID is used for passing the subscription if not set in environment variables.
func WithSubscriptionID(subscriptionID string) Option {
	return func(ac *AdvisorConfiguration) error {
		if subscriptionID == "" {
			return errors.New("subscription ID must not be empty")
		}
		ac.scope.SubscriptionID = subscriptionID
		return nil
	}
}

// WithResourceGroup scopes GetConfiguration and SendConfiguration to a resource
// group of the subscription. SetLowCPUThreshold still writes the subscription.
func WithResourceGroup(resourceGroup string) Option {
	return func(ac *AdvisorConfiguration) error {
		ac.scope.ResourceGroup = resourceGroup
		return nil
	}
}

// WithAuthentication is used for passing the service principal if not set in environment variables.
func WithAuthentication(authProvider model.AuthProvider) Option {
	return func(ac *AdvisorConfiguration) error {
		if authProvider == nil {
			return errors.New("auth provider must not be nil")
		}
		ac.auth = authProvider
		return nil
	}
}

// WithCloud selects the Azure cloud. Defaults to cloud.AzurePublic.
func WithCloud(cloudConfig cloud.Configuration) Option {
	return func(ac *AdvisorConfiguration) error {
		ac.cloud = cloudConfig
		return nil
	}
}

// WithHTTPClient replaces the HTTP client used for token and management requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(ac *AdvisorConfiguration) error {
		if httpClient == nil {
			return errors.New("http client must not be nil")
		}
		ac.client = httpClient
		return nil
	}
}

// WithRateLimit is used to limit the configuration writes per minute
// Note: By default, writes are not rate limited.
func WithRateLimit(requestCount int) Option {
	return func(ac *AdvisorConfiguration) error {
		ac.rateLimiterSetting.RequestCount = requestCount
		return nil
	}
}

func WithLogger(logger hclog.Logger) Option {
	return func(ac *AdvisorConfiguration) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		ac.logger = logger
		return nil
	}
}

// WithVerification reads the configuration back after every write and fails if it
// does not match what was sent.
func WithVerification() Option {
	return func(ac *AdvisorConfiguration) error {
		ac.verify = true
		return nil
	}
}
