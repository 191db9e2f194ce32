package shell

import (
	"strings"

	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

func (s *Session) mainMenu() {
	s.println("\n" + strings.Repeat("=", 40))
	s.println("           🛒 MENU PRINCIPAL           ")
	s.println(strings.Repeat("=", 40))
	s.println("1 - Mostrar produtos")
	s.println("2 - Adicionar produto ao carrinho")
	s.println("3 - Ver carrinho")
	s.println("4 - Remover item do carrinho")
	s.println("5 - Finalizar compra")
	s.println("6 - Acessar modo Admin")
	s.println("7 - Sair")
	s.println(strings.Repeat("=", 40))
}

func (s *Session) showProducts() {
	renderProducts(s.out, s.m.Catalog.List())
}

func (s *Session) showCart() {
	renderCart(s.out, s.m.Cart.View())
}

func (s *Session) addToCart() error {
	s.showProducts()
	code, err := s.readInt("Digite o código do produto: ")
	if err != nil {
		return err
	}
	quantity, err := s.readInt("Digite a quantidade desejada: ")
	if err != nil {
		return err
	}
	if err := s.m.Cart.Add(code, quantity); err != nil {
		return s.fail(err)
	}
	p, _ := s.m.Catalog.Get(code)
	s.printf("%dx %s adicionado ao carrinho!\n", quantity, p.Name)
	return nil
}

func (s *Session) removeFromCart() error {
	s.showCart()
	code, err := s.readInt("Digite o código do produto para remover: ")
	if err != nil {
		return err
	}
	entry, err := s.m.Cart.Remove(code)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			s.println("Produto não encontrado no carrinho.")
			return nil
		}
		return s.fail(err)
	}
	p, _ := s.m.Catalog.Get(code)
	s.printf("%dx %s removido do carrinho.\n", entry.Quantity, p.Name)
	return nil
}

func (s *Session) finalize() error {
	receipt, err := s.m.Cart.Finalize()
	if err != nil {
		return s.fail(err)
	}
	renderCart(s.out, receipt.View)
	s.println("\nCompra finalizada. Obrigado pela preferência!")
	s.printf("Recibo: %s\n", receipt.ID)
	return nil
}
