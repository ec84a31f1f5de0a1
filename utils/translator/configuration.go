package translator

import (
	"fmt"
	"strconv"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/advisor/armadvisor"
	"github.com/logicmonitor/advisor-config-sdk-go/model"
)

// ConvertToConfigData builds the Advisor payload for input. Values are copied as-is.
func ConvertToConfigData(input model.ConfigurationInput) armadvisor.ConfigData {
	threshold := armadvisor.CPUThreshold(strconv.Itoa(input.LowCPUThreshold))
	return armadvisor.ConfigData{
		Properties: &armadvisor.ConfigDataProperties{
			LowCPUThreshold: &threshold,
			Exclude:         to.Ptr(input.Exclude),
		},
	}
}

// ConvertToExclusionData builds a payload that only carries the exclusion flag,
// the one field a resource group configuration accepts.
func ConvertToExclusionData(exclude bool) armadvisor.ConfigData {
	return armadvisor.ConfigData{
		Properties: &armadvisor.ConfigDataProperties{
			Exclude: to.Ptr(exclude),
		},
	}
}

// ConvertFromConfigData reads the threshold and exclusion flag out of a stored
// configuration. Missing fields read as their zero value.
func ConvertFromConfigData(data armadvisor.ConfigData) (model.ConfigurationInput, error) {
	input := model.ConfigurationInput{}
	if data.Properties == nil {
		return input, nil
	}
	if data.Properties.Exclude != nil {
		input.Exclude = *data.Properties.Exclude
	}
	if data.Properties.LowCPUThreshold != nil {
		threshold, err := strconv.Atoi(string(*data.Properties.LowCPUThreshold))
		if err != nil {
			return input, fmt.Errorf("%w: low CPU threshold %q: %w", model.ErrUnexpectedResponse, *data.Properties.LowCPUThreshold, err)
		}
		input.LowCPUThreshold = threshold
	}
	return input, nil
}
