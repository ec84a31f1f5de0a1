package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/advisor/armadvisor"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/logicmonitor/advisor-config-sdk-go/model"
	rateLimiter "github.com/logicmonitor/advisor-config-sdk-go/pkg/ratelimiter"
	"github.com/logicmonitor/advisor-config-sdk-go/utils"
	"github.com/logicmonitor/advisor-config-sdk-go/utils/translator"
)

const defaultTimeout = 30 * time.Second

var errConfigurationNotFound = errors.New("no default advisor configuration at scope")

type RequestConfig struct {
	Credential    azcore.TokenCredential
	ClientOptions *arm.ClientOptions
	RateLimiter   rateLimiter.RateLimiter
	Scope         model.Scope
	Body          armadvisor.ConfigData
}

// Client returns the HTTP client handed to azcore as its transport.
func Client() *http.Client {
	httpClient := cleanhttp.DefaultPooledClient()
	if transport, ok := httpClient.Transport.(*http.Transport); ok {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: false, MinVersion: tls.VersionTLS12}
	}
	httpClient.Timeout = defaultTimeout
	return httpClient
}

// ClientOptions builds the options shared by the credential and the Advisor client.
// Requests are sent once: retries and resource provider auto-registration are off.
func ClientOptions(httpClient *http.Client, cloudConfig cloud.Configuration) *arm.ClientOptions {
	return &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Cloud:     cloudConfig,
			Transport: httpClient,
			Retry: policy.RetryOptions{
				MaxRetries: -1,
			},
			Telemetry: policy.TelemetryOptions{
				ApplicationID: utils.BuildApplicationID(),
			},
		},
		DisableRPRegistration: true,
	}
}

// AcquireToken obtains a management-plane token so credential problems surface
// before anything is sent to Advisor.
func AcquireToken(ctx context.Context, cred azcore.TokenCredential, cloudConfig cloud.Configuration) error {
	svc, ok := cloudConfig.Services[cloud.ResourceManager]
	if !ok || svc.Audience == "" {
		return fmt.Errorf("cloud configuration has no resource manager audience")
	}
	_, err := cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{strings.TrimSuffix(svc.Audience, "/") + "/.default"},
	})
	if err != nil {
		return ConvertAuthError(err)
	}
	return nil
}

// MakeRequest writes the advisory configuration at the request scope. A response
// returned together with an error means the write was accepted but the reply
// could not be read.
func MakeRequest(ctx context.Context, reqConfig RequestConfig) (*model.ConfigurationResponse, error) {
	if reqConfig.Credential == nil {
		return nil, fmt.Errorf("missing credential")
	}
	configClient, err := armadvisor.NewConfigurationsClient(reqConfig.Scope.SubscriptionID, reqConfig.Credential, reqConfig.ClientOptions)
	if err != nil {
		return nil, fmt.Errorf("error while creating advisor client: %w", err)
	}

	if acquire, err := reqConfig.RateLimiter.Acquire(); !acquire {
		return nil, err
	}

	clientRequestID := uuid.New()
	header := http.Header{}
	header.Set(utils.HeaderClientRequestID, clientRequestID.String())
	var httpResp *http.Response
	ctx = runtime.WithCaptureResponse(policy.WithHTTPHeader(ctx, header), &httpResp)

	var stored armadvisor.ConfigData
	if reqConfig.Scope.ResourceGroup == "" {
		resp, err := configClient.CreateInSubscription(ctx, armadvisor.ConfigurationNameDefault, reqConfig.Body, nil)
		if err != nil {
			return nil, ConvertError(err)
		}
		stored = resp.ConfigData
	} else {
		resp, err := configClient.CreateInResourceGroup(ctx, armadvisor.ConfigurationNameDefault, reqConfig.Scope.ResourceGroup, reqConfig.Body, nil)
		if err != nil {
			return nil, ConvertError(err)
		}
		stored = resp.ConfigData
	}

	response, err := buildResponse(reqConfig.Scope, stored, httpResp)
	response.ClientRequestID = clientRequestID
	return response, err
}

// GetConfiguration reads the default advisory configuration at the request scope.
// Listing a subscription also returns its resource groups' configurations, so the
// match is made on the resource ID.
func GetConfiguration(ctx context.Context, reqConfig RequestConfig) (*model.ConfigurationResponse, error) {
	if reqConfig.Credential == nil {
		return nil, fmt.Errorf("missing credential")
	}
	configClient, err := armadvisor.NewConfigurationsClient(reqConfig.Scope.SubscriptionID, reqConfig.Credential, reqConfig.ClientOptions)
	if err != nil {
		return nil, fmt.Errorf("error while creating advisor client: %w", err)
	}

	var httpResp *http.Response
	ctx = runtime.WithCaptureResponse(ctx, &httpResp)

	configurationID := reqConfig.Scope.ConfigurationID()
	var found *armadvisor.ConfigData
	if reqConfig.Scope.ResourceGroup == "" {
		pager := configClient.NewListBySubscriptionPager(nil)
		for found == nil && pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return nil, ConvertError(err)
			}
			found = findConfiguration(page.Value, configurationID)
		}
	} else {
		pager := configClient.NewListByResourceGroupPager(reqConfig.Scope.ResourceGroup, nil)
		for found == nil && pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return nil, ConvertError(err)
			}
			found = findConfiguration(page.Value, configurationID)
		}
	}
	if found == nil {
		return nil, &model.ConfigurationError{Kind: model.NotFoundError, Err: errConfigurationNotFound}
	}
	return buildResponse(reqConfig.Scope, *found, httpResp)
}

func findConfiguration(values []*armadvisor.ConfigData, id string) *armadvisor.ConfigData {
	for _, v := range values {
		if v != nil && v.ID != nil && strings.EqualFold(*v.ID, id) {
			return v
		}
	}
	return nil
}

func buildResponse(scope model.Scope, data armadvisor.ConfigData, httpResp *http.Response) (*model.ConfigurationResponse, error) {
	input, err := translator.ConvertFromConfigData(data)
	response := &model.ConfigurationResponse{
		Scope:         scope,
		Name:          model.DefaultConfigurationName,
		Configuration: input,
		RequestID:     utils.RequestID(httpResp),
	}
	if data.Name != nil {
		response.Name = *data.Name
	}
	if data.ID != nil {
		response.ID = *data.ID
	}
	if httpResp != nil {
		response.StatusCode = httpResp.StatusCode
	}
	return response, err
}
