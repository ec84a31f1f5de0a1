package model

import (
	"github.com/google/uuid"
)

// DefaultConfigurationName is the only configuration name Advisor accepts.
const DefaultConfigurationName = "default"

// ConfigurationInput holds the advisory configuration fields this SDK writes.
// LowCPUThreshold only applies to subscriptions.
type ConfigurationInput struct {
	LowCPUThreshold int
	Exclude         bool
}

// Scope identifies where a configuration is stored. An empty ResourceGroup means
// subscription scope.
type Scope struct {
	SubscriptionID string
	ResourceGroup  string
}

// ConfigurationID returns the resource ID of the default configuration at s.
func (s Scope) ConfigurationID() string {
	id := "/subscriptions/" + s.SubscriptionID
	if s.ResourceGroup != "" {
		id += "/resourceGroups/" + s.ResourceGroup
	}
	return id + "/providers/Microsoft.Advisor/configurations/" + DefaultConfigurationName
}

type ConfigurationResponse struct {
	Scope
	Name            string
	ID              string
	Configuration   ConfigurationInput
	StatusCode      int
	ClientRequestID uuid.UUID
	RequestID       uuid.UUID
}
