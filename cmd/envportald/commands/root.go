package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hnrobert/envportal/internal/config"
	"github.com/hnrobert/envportal/internal/flows"
)

var (
	listenAddr string
	dataDir    string
	sitePath   string
	secret     string

	registry *flows.Registry
)

func Execute() error {
	root := &cobra.Command{
		Use:           "envportald",
		Short:         "Sign in, sign up and password recovery forms",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if sitePath == "" {
				sitePath = config.DefaultPath(dataDir)
			}
			r, err := flows.NewRegistry(flows.PlaceholderVerifier{})
			if err != nil {
				return err
			}
			registry = r
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data", getenvDefault("ENVPORTAL_DATA", "."), "data directory for logs and site config")
	root.PersistentFlags().StringVar(&sitePath, "site", os.Getenv("ENVPORTAL_CONFIG"), "site config file (default <data>/site.yaml)")
	root.Flags().StringVar(&listenAddr, "listen", getenvDefault("ENVPORTAL_LISTEN", ":14392"), "listen address")
	root.Flags().StringVar(&secret, "secret", os.Getenv("ENVPORTAL_SECRET"), "instance token secret (base64url or raw)")

	root.AddCommand(serveCmd(), flowsCmd(), formCmd())
	return root.Execute()
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
