package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/logicmonitor/advisor-config-sdk-go/api/configurations"
	"github.com/logicmonitor/advisor-config-sdk-go/model"
)

// Reads AZURE_CLIENT_ID, AZURE_CLIENT_SECRET, AZURE_TENANT_ID and
// AZURE_SUBSCRIPTION_ID from the environment.
func main() {
	options := []configurations.Option{
		configurations.WithLogger(hclog.New(&hclog.LoggerOptions{Name: "example", Level: hclog.Debug})),
		configurations.WithVerification(),
	}

	advisor, err := configurations.NewAdvisorConfiguration(context.Background(), options...)
	if err != nil {
		fmt.Println("Error in initializing advisor configuration :", err)
		os.Exit(1)
	}
	defer advisor.Shutdown(context.Background())

	// update low CPU threshold to 20
	resp, err := advisor.SetLowCPUThreshold(context.Background(), 20, false)
	if err != nil {
		if model.IsKind(err, model.AuthorizationError) {
			fmt.Println("The service principal needs the Advisor Contributor role on the subscription")
		}
		fmt.Println("Error in updating advisor configuration: ", err)
		os.Exit(1)
	}
	fmt.Printf("Configuration %s updated, request id %s\n", resp.ID, resp.RequestID)

	current, err := advisor.GetConfiguration(context.Background())
	if err != nil {
		fmt.Println("Error in reading advisor configuration: ", err)
		os.Exit(1)
	}
	fmt.Printf("Low CPU threshold: %d%%, excluded: %t\n", current.Configuration.LowCPUThreshold, current.Configuration.Exclude)
}
