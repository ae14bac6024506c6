package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docue",
	Short: "Docue - document management with role-based access",
	Long: `Docue is a document management service with role-based access control.

Examples:
  # Start the API server
  docue serve

  # Start on a specific port
  docue serve --port 9000

  # Create an admin user directly in the database
  docue create-admin <username> <email> <password>`,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createAdminCmd)
}
