package main

import (
	"github.com/spf13/cobra"

	"github.com/kevgathuku/docue-stack-sub000/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Docue API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.RunWithSignalHandling(server.Config{
			Port:    servePort,
			Version: Version,
		})
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to run the server on (overrides config)")
}
