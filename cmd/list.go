package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/phillip/charity-admin-go/dashboard"
)

var (
	apiURL   string
	apiToken string
)

var listCmd = &cobra.Command{
	Use:   "list <entity>",
	Short: "Print every entity of one type from a running API",
	Example: `  charity-admin list events
  charity-admin list messages --token $ADMIN_TOKEN`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := dashboard.NewClient(apiURL, dashboard.WithToken(apiToken))
		view := dashboard.NewListView[map[string]any](client, args[0], dashboard.LogNotifier{Log: logger})
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view.Items())
	},
}

func init() {
	listCmd.Flags().StringVar(&apiURL, "api", "http://localhost:8080", "base URL of the API")
	listCmd.Flags().StringVar(&apiToken, "token", os.Getenv("ADMIN_TOKEN"), "admin bearer token")
}
