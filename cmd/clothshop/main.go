package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations and seeders so their init() funcs register them.
	_ "github.com/Akibsaiyad14/clothsbillingandinventory/database/migrations"
	_ "github.com/Akibsaiyad14/clothsbillingandinventory/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clothshop",
	Short: "Cloth shop billing and inventory admin CLI",
	Long:  "Operational CLI for the cloth shop backend: migrations, seed data, queue workers, the scheduler, and inventory reports. The HTTP server itself is the cmd/server binary.",
}

func init() {
	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)

	// Inspection
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(stockLowCmd)
}
