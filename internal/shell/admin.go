package shell

import (
	"context"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/mercado/app/models"
	"github.com/shashiranjanraj/mercado/app/services"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

func (s *Session) adminLogin(ctx context.Context) error {
	cpf, err := s.readLine("Digite o CPF do Admin (somente números): ")
	if err != nil {
		return err
	}
	if !models.ValidCPF(cpf) {
		s.println("CPF inválido! Deve conter 11 números.")
		return nil
	}
	secret, err := s.readLine("Digite a senha do Admin: ")
	if err != nil {
		return err
	}
	if !s.m.Admins.Authenticate(cpf, secret) {
		s.println("CPF ou senha incorretos!")
		return nil
	}
	s.log.Info("admin session started", "cpf", models.NormalizeCPF(cpf))
	return s.adminLoop(ctx)
}

func (s *Session) adminMenu() {
	s.println("\n" + strings.Repeat("=", 40))
	s.println("         🔧 MENU ADMINISTRADOR        ")
	s.println(strings.Repeat("=", 40))
	s.println("1 - Cadastrar produto")
	s.println("2 - Editar produto")
	s.println("3 - Remover produto")
	s.println("4 - Listar produtos")
	s.println("5 - Listar administradores")
	s.println("6 - Cadastrar administrador")
	s.println("7 - Remover administrador")
	s.println("8 - Sair do modo Admin")
	s.println(strings.Repeat("=", 40))
}

func (s *Session) adminLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.adminMenu()
		option, err := s.readLine("Escolha uma opção: ")
		if err != nil {
			return err
		}

		switch option {
		case "1":
			err = s.registerProduct()
		case "2":
			err = s.editProduct()
		case "3":
			err = s.deleteProduct()
		case "4":
			s.showProducts()
		case "5":
			renderAdmins(s.out, s.m.Admins.List())
		case "6":
			err = s.registerAdmin()
		case "7":
			err = s.removeAdmin()
		case "8":
			s.println("Saindo do modo Admin...")
			return nil
		default:
			s.println("Opção inválida.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) registerProduct() error {
	name, err := s.readLine("Digite o nome do produto: ")
	if err != nil {
		return err
	}
	price, err := s.readPrice("Digite o preço do produto: ")
	if err != nil {
		return err
	}
	stock, err := s.readInt("Digite a quantidade em estoque: ")
	if err != nil {
		return err
	}
	code, err := s.m.Catalog.Register(name, price, stock)
	if err != nil {
		return s.fail(err)
	}
	p, _ := s.m.Catalog.Get(code)
	s.printf("Produto %s cadastrado com sucesso! (Código: %d)\n", p.Name, code)
	return nil
}

func (s *Session) editProduct() error {
	s.showProducts()
	code, err := s.readInt("Digite o código do produto que deseja editar: ")
	if err != nil {
		return err
	}
	p, ok := s.m.Catalog.Get(code)
	if !ok {
		s.println("Código inválido.")
		return nil
	}

	name, err := s.readLine("Novo nome (" + p.Name + "): ")
	if err != nil {
		return err
	}
	price, err := s.readLine("Novo preço (" + p.Price.StringFixed(2) + "): ")
	if err != nil {
		return err
	}
	stock, err := s.readLine("Novo estoque (" + strconv.Itoa(p.Stock) + "): ")
	if err != nil {
		return err
	}

	patch, err := services.ParsePatch(name, price, stock)
	if err != nil {
		s.println("Valores inválidos.")
		return nil
	}
	if patch.Empty() {
		s.println("Nenhuma alteração feita.")
		return nil
	}
	if err := s.m.Catalog.Edit(code, patch); err != nil {
		return s.fail(err)
	}
	s.println("Produto atualizado com sucesso!")
	return nil
}

func (s *Session) deleteProduct() error {
	s.showProducts()
	code, err := s.readInt("Digite o código do produto que deseja remover: ")
	if err != nil {
		return err
	}
	p, ok := s.m.Catalog.Get(code)
	if !ok {
		s.println("Código inválido.")
		return nil
	}
	if err := s.m.Catalog.Delete(code); err != nil {
		return s.fail(err)
	}
	s.printf("Produto %s removido com sucesso!\n", p.Name)
	return nil
}

func (s *Session) registerAdmin() error {
	cpf, err := s.readLine("Digite o CPF do novo Admin (somente números): ")
	if err != nil {
		return err
	}
	if !models.ValidCPF(cpf) {
		s.println("CPF inválido!")
		return nil
	}
	for _, a := range s.m.Admins.List() {
		if a.CPF == models.NormalizeCPF(cpf) {
			s.println("Admin já cadastrado!")
			return nil
		}
	}
	secret, err := s.readLine("Digite a senha do novo Admin: ")
	if err != nil {
		return err
	}
	if err := s.m.Admins.Register(cpf, secret); err != nil {
		return s.fail(err)
	}
	s.println("Admin cadastrado com sucesso!")
	return nil
}

func (s *Session) removeAdmin() error {
	if s.m.Admins.Len() <= 1 {
		s.println("Não é possível remover o último administrador!")
		return nil
	}
	renderAdmins(s.out, s.m.Admins.List())
	cpf, err := s.readLine("Digite o CPF do Admin que deseja remover: ")
	if err != nil {
		return err
	}
	if err := s.m.Admins.Remove(cpf); err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			s.println("Admin não encontrado!")
			return nil
		}
		return s.fail(err)
	}
	s.println("Admin removido com sucesso!")
	return nil
}
