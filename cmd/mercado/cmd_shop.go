package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/internal/shell"
)

// mercado shop
var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Start the interactive market session",
	RunE:  runShop,
}

func runShop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "============== Mercado ==============")
	fmt.Fprintln(out, "Bem-vindo ao sistema de mercado!")
	fmt.Fprintln(out, "=====================================")

	err := withMarket(ctx, func(m *services.Market) error {
		err := shell.Run(ctx, m, cmd.InOrStdin(), out)
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out, "\nSessão interrompida.")
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Dados salvos com sucesso. Até logo!")
	return nil
}

// mercado products
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Print the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarketReadOnly(cmd.Context(), func(m *services.Market) error {
			shell.RenderProducts(cmd.OutOrStdout(), m.Catalog.List())
			return nil
		})
	},
}

// mercado cart
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Print the saved shopping cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarketReadOnly(cmd.Context(), func(m *services.Market) error {
			shell.RenderCart(cmd.OutOrStdout(), m.Cart.View())
			return nil
		})
	},
}
