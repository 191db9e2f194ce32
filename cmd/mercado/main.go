package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	// SIGINT and SIGTERM cancel the command context; the shop still saves.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	configPath string
	envPath    string
)

var rootCmd = &cobra.Command{
	Use:           "mercado",
	Short:         "Mercado: market inventory and shopping cart",
	Long:          "Mercado keeps a product catalog, a shopping cart and the administrators allowed to manage them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShop,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/app.json", "JSON config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "dotenv file")

	// Session
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(cartCmd)

	// Maintenance
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(stateExportCmd)
	rootCmd.AddCommand(stateImportCmd)
}
