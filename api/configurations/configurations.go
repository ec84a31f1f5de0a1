package configurations

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/hashicorp/go-hclog"
	"github.com/logicmonitor/advisor-config-sdk-go/internal/client"
	"github.com/logicmonitor/advisor-config-sdk-go/model"
	rateLimiter "github.com/logicmonitor/advisor-config-sdk-go/pkg/ratelimiter"
	"github.com/logicmonitor/advisor-config-sdk-go/utils"
	"github.com/logicmonitor/advisor-config-sdk-go/utils/translator"
)

// AdvisorConfiguration writes Azure Advisor configurations for one subscription.
// It holds no credential between calls.
type AdvisorConfiguration struct {
	client             *http.Client
	cloud              cloud.Configuration
	scope              model.Scope
	auth               model.AuthProvider
	verify             bool
	logger             hclog.Logger
	rateLimiterSetting rateLimiter.RateLimiterSetting
	rateLimiter        rateLimiter.RateLimiter
}

// NewAdvisorConfiguration initializes AdvisorConfiguration
func NewAdvisorConfiguration(ctx context.Context, opts ...Option) (*AdvisorConfiguration, error) {
	ac := AdvisorConfiguration{
		client:             client.Client(),
		cloud:              cloud.AzurePublic,
		auth:               model.DefaultAuthenticator{},
		logger:             hclog.NewNullLogger(),
		rateLimiterSetting: rateLimiter.RateLimiterSetting{},
	}

	for _, opt := range opts {
		if err := opt(&ac); err != nil {
			return nil, err
		}
	}

	if ac.scope.SubscriptionID == "" {
		subscriptionID, err := utils.SubscriptionID()
		if err != nil {
			return nil, fmt.Errorf("error in resolving subscription: %w", err)
		}
		ac.scope.SubscriptionID = subscriptionID
	}

	var err error
	ac.rateLimiter, err = rateLimiter.New(ac.rateLimiterSetting)
	if err != nil {
		return nil, err
	}
	go ac.rateLimiter.Run(ctx)
	return &ac, nil
}

// SetLowCPUThreshold sets the CPU utilization percentage under which Advisor
// recommends shutting down or resizing virtual machines, and whether the
// subscription is excluded from those recommendations. It always writes the
// subscription configuration, whatever resource group the client is scoped to.
func (ac *AdvisorConfiguration) SetLowCPUThreshold(ctx context.Context, threshold int, exclude bool) (*model.ConfigurationResponse, error) {
	scope := model.Scope{SubscriptionID: ac.scope.SubscriptionID}
	return ac.send(ctx, scope, model.ConfigurationInput{
		LowCPUThreshold: threshold,
		Exclude:         exclude,
	})
}

// SetExclusionInResourceGroup sets whether a resource group is excluded from
// Advisor recommendations. Resource groups take no low CPU threshold of their own.
func (ac *AdvisorConfiguration) SetExclusionInResourceGroup(ctx context.Context, resourceGroup string, exclude bool) (*model.ConfigurationResponse, error) {
	if resourceGroup == "" {
		return nil, fmt.Errorf("resource group must not be empty")
	}
	scope := model.Scope{SubscriptionID: ac.scope.SubscriptionID, ResourceGroup: resourceGroup}
	return ac.send(ctx, scope, model.ConfigurationInput{Exclude: exclude})
}

// SendConfiguration writes input as the default configuration of the client's
// scope. At resource group scope the threshold must be left at zero.
func (ac *AdvisorConfiguration) SendConfiguration(ctx context.Context, input model.ConfigurationInput) (*model.ConfigurationResponse, error) {
	return ac.send(ctx, ac.scope, input)
}

func (ac *AdvisorConfiguration) send(ctx context.Context, scope model.Scope, input model.ConfigurationInput) (*model.ConfigurationResponse, error) {
	body := translator.ConvertToConfigData(input)
	if scope.ResourceGroup != "" {
		if input.LowCPUThreshold != 0 {
			return nil, &model.ConfigurationError{Kind: model.ValidationError, Err: model.ErrThresholdNotSupported}
		}
		body = translator.ConvertToExclusionData(input.Exclude)
	}

	reqConfig, err := ac.requestConfig(ctx, scope)
	if err != nil {
		return nil, err
	}
	reqConfig.Body = body

	ac.logger.Debug("writing advisor configuration",
		"subscription_id", scope.SubscriptionID,
		"resource_group", scope.ResourceGroup,
		"low_cpu_threshold", input.LowCPUThreshold,
		"exclude", input.Exclude)

	resp, err := client.MakeRequest(ctx, reqConfig)
	if resp == nil {
		return nil, err
	}
	ac.logger.Info("advisor configuration written",
		"subscription_id", scope.SubscriptionID,
		"resource_group", scope.ResourceGroup,
		"request_id", resp.RequestID,
		"client_request_id", resp.ClientRequestID)
	if err != nil {
		ac.logger.Warn("could not read the written advisor configuration", "error", err)
		return resp, err
	}

	if !ac.verify {
		return resp, nil
	}
	stored, err := client.GetConfiguration(ctx, reqConfig)
	if err != nil {
		return resp, fmt.Errorf("error while reading back advisor configuration: %w", err)
	}
	if !matches(scope, input, stored.Configuration) {
		return resp, fmt.Errorf("%w: sent %+v, stored %+v", model.ErrVerificationMismatch, input, stored.Configuration)
	}
	ac.logger.Debug("advisor configuration verified", "subscription_id", scope.SubscriptionID, "resource_group", scope.ResourceGroup)
	return resp, nil
}

// resource group configurations carry no threshold
func matches(scope model.Scope, sent, stored model.ConfigurationInput) bool {
	if scope.ResourceGroup != "" {
		return sent.Exclude == stored.Exclude
	}
	return sent == stored
}

// GetConfiguration returns the default configuration stored for the client's scope.
func (ac *AdvisorConfiguration) GetConfiguration(ctx context.Context) (*model.ConfigurationResponse, error) {
	reqConfig, err := ac.requestConfig(ctx, ac.scope)
	if err != nil {
		return nil, err
	}
	return client.GetConfiguration(ctx, reqConfig)
}

// Scope returns the subscription and resource group the client writes to.
func (ac *AdvisorConfiguration) Scope() model.Scope {
	return ac.scope
}

// Shutdown stops the write rate limiter and its timer. Later writes fail when a
// rate limit is set.
func (ac *AdvisorConfiguration) Shutdown(ctx context.Context) {
	ac.rateLimiter.Shutdown(ctx)
}

// requestConfig builds a fresh credential for one call and makes sure it can
// obtain a token.
func (ac *AdvisorConfiguration) requestConfig(ctx context.Context, scope model.Scope) (client.RequestConfig, error) {
	options := client.ClientOptions(ac.client, ac.cloud)
	cred, err := ac.auth.GetCredential(options.ClientOptions)
	if err != nil {
		return client.RequestConfig{}, client.ConvertAuthError(err)
	}
	if err := client.AcquireToken(ctx, cred, ac.cloud); err != nil {
		return client.RequestConfig{}, err
	}
	return client.RequestConfig{
		Credential:    cred,
		ClientOptions: options,
		RateLimiter:   ac.rateLimiter,
		Scope:         scope,
	}, nil
}
