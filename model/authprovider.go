package model

import "github.com/Azure/azure-sdk-for-go/sdk/azcore"

// AuthProvider builds the credential used for a single configuration request.
// Implementations must return a fresh credential on every call.
type AuthProvider interface {
	GetCredential(opts azcore.ClientOptions) (azcore.TokenCredential, error)
}
