package model

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/logicmonitor/advisor-config-sdk-go/utils"
)

// DefaultAuthenticator implements AuthProvider interface using the service principal
// found in environment variables.
type DefaultAuthenticator struct {
}

func (da DefaultAuthenticator) GetCredential(opts azcore.ClientOptions) (azcore.TokenCredential, error) {
	return utils.GetCredential(opts)
}

// ServicePrincipal implements AuthProvider interface for an explicitly supplied
// application id, secret and tenant.
type ServicePrincipal struct {
	ClientID     string
	ClientSecret string
	TenantID     string
}

func (sp ServicePrincipal) GetCredential(opts azcore.ClientOptions) (azcore.TokenCredential, error) {
	return utils.NewClientSecretCredential(sp.TenantID, sp.ClientID, sp.ClientSecret, opts)
}
