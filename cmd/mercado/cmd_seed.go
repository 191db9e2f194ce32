package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/database/seeders"
)

// mercado seed [name]
var seedCmd = &cobra.Command{
	Use:   "seed [name]",
	Short: "Run catalog seeders",
	Long:  "Run every registered catalog seeder, or only the named one: " + strings.Join(seeders.Names(), ", "),
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withMarket(cmd.Context(), func(m *services.Market) error {
			fmt.Fprintln(out, "Running seeders…")
			if len(args) == 1 {
				return seeders.Run(args[0], m.Catalog, out)
			}
			return seeders.RunAll(m.Catalog, out)
		})
	},
}
