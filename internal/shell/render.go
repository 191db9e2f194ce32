package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/shashiranjanraj/mercado/app/models"
	"github.com/shashiranjanraj/mercado/app/services"
)

// RenderProducts prints the catalog table used by the shell and by the
// products command.
func RenderProducts(w io.Writer, products []models.Product) { renderProducts(w, products) }

// RenderCart prints a cart view as a table with its total.
func RenderCart(w io.Writer, v services.View) { renderCart(w, v) }

func renderProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "\nNenhum produto cadastrado.")
		return
	}
	fmt.Fprintln(w, "\n=== Produtos Disponíveis ===")
	fmt.Fprintf(w, "%-6s | %-20s | %-10s | %-6s\n", "Código", "Produto", "Preço", "Estoque")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, p := range products {
		fmt.Fprintf(w, "%-6d | %-20s | R$ %-7s | %-6d\n", p.Code, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	fmt.Fprintln(w, strings.Repeat("-", 50))
}

func renderCart(w io.Writer, v services.View) {
	if v.Empty() {
		fmt.Fprintln(w, "\nCarrinho vazio!")
		return
	}
	fmt.Fprintln(w, "\n=== Seu Carrinho ===")
	fmt.Fprintf(w, "%-20s | %-4s | %-12s | %-10s\n", "Produto", "Qtd", "Preço Unit.", "Subtotal")
	fmt.Fprintln(w, strings.Repeat("-", 55))
	for _, l := range v.Lines {
		fmt.Fprintf(w, "%-20s | %-4d | R$ %-9s | R$ %-7s\n",
			l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Subtotal.StringFixed(2))
	}
	fmt.Fprintln(w, strings.Repeat("-", 55))
	fmt.Fprintf(w, "%-20s | %-4s | %-12s | R$ %-7s\n", "TOTAL", "", "", v.Total.StringFixed(2))
	fmt.Fprintln(w, strings.Repeat("-", 55))
}

func renderAdmins(w io.Writer, admins []models.AdminIdentity) {
	if len(admins) == 0 {
		fmt.Fprintln(w, "\nNenhum administrador cadastrado.")
		return
	}
	fmt.Fprintln(w, "\n=== Administradores Cadastrados ===")
	for i, a := range admins {
		fmt.Fprintf(w, "%d. CPF: %s\n", i+1, a.CPF)
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
}
