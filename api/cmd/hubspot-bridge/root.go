package hubspotbridge

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var Fatal = FatalErrorHandler

func NewRootCmd() *cobra.Command {
	RootCmd := &cobra.Command{
		Use:   getCommandLineExecutable(),
		Short: "HubSpot Bridge",
		Long:  `Webhook receiver and OAuth bridge between the CRM and HubSpot`,
	}

	RootCmd.AddCommand(newServeCmd())
	RootCmd.AddCommand(newVersionCommand())

	return RootCmd
}

func Execute() {
	RootCmd := NewRootCmd()
	RootCmd.SetContext(context.Background())
	RootCmd.SetOutput(os.Stdout)

	if err := RootCmd.Execute(); err != nil {
		Fatal(RootCmd, err.Error(), 1)
	}
}
