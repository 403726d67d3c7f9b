package commands

import (
	"github.com/spf13/cobra"

	"rollbook/internal/config"
	"rollbook/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the attendance dashboard web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host interface to bind (overrides HTTP_HOST)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to serve on (overrides HTTP_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if serveHost != "" {
		cfg.HTTPHost = serveHost
	}
	if servePort != "" {
		cfg.HTTPPort = servePort
	}
	cfg.StorePath = resolveStorePath()

	sess, err := server.NewSession(cfg.StorePath)
	if err != nil {
		return err
	}
	return server.Run(cfg, sess)
}
