// Package commands implements the StudyHub command line interface
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/studyhub-dev/studyhub/pkg/api/v1/client"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagAuthToken     = "token"
)

// environment variable names
const (
	envServerAddress = "STUDYHUB_SERVER_ADDRESS"
	envAuthToken     = "STUDYHUB_TOKEN"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// authToken holds the bearer token used for authenticated requests
	authToken string
)

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress
	opts.AuthToken = authToken

	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	// Basic defaults for the flags. PersistentPreRunE handles env var override.
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", client.DefaultBaseURL, "Address of the StudyHub API server (env: STUDYHUB_SERVER_ADDRESS)")
	RootCmd.PersistentFlags().StringVarP(&authToken, flagAuthToken, "t", "", "Bearer token for authenticated requests (env: STUDYHUB_TOKEN)")

	RootCmd.AddCommand(GetProjectsCmd())
	RootCmd.AddCommand(GetTasksCmd())
	RootCmd.AddCommand(GetInsightsCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "studyhub",
	Short: "StudyHub CLI - A command line interface for the StudyHub API",
	Long: `StudyHub CLI is a command line tool for managing study projects, tasks,
and AI-assisted insights through the StudyHub API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Env vars take effect only when the flag was not set explicitly
		if !cmd.Flags().Changed(flagServerAddress) {
			if addr := os.Getenv(envServerAddress); addr != "" {
				serverAddress = addr
			}
		}
		if !cmd.Flags().Changed(flagAuthToken) {
			if token := os.Getenv(envAuthToken); token != "" {
				authToken = token
			}
		}
		return initClient()
	},
}
