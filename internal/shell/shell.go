// Package shell is the interactive terminal front end: the customer menu and
// the administrator menu behind a CPF login. It only talks to the market
// services; persistence happens in the caller once Run returns.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/mercado/app/services"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
	"github.com/shashiranjanraj/mercado/pkg/logger"
)

// Session is one interactive run over a reader and a writer.
type Session struct {
	m   *services.Market
	in  *bufio.Reader
	out io.Writer
	log *slog.Logger

	// Set by Run. Lines are read on their own goroutine so a prompt can
	// give up when ctx is cancelled.
	ctx   context.Context
	lines chan read
}

type read struct {
	line string
	err  error
}

func New(m *services.Market, in io.Reader, out io.Writer) *Session {
	return &Session{
		m:   m,
		in:  bufio.NewReader(in),
		out: out,
		log: logger.Component("shell"),
	}
}

// Run is shorthand for New(m, in, out).Run(ctx).
func Run(ctx context.Context, m *services.Market, in io.Reader, out io.Writer) error {
	return New(m, in, out).Run(ctx)
}

// Run shows the main menu until the customer leaves or the input ends. Only
// unrecoverable errors are returned. Cancelling ctx interrupts any pending
// prompt and Run returns ctx's error.
func (s *Session) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	quit := make(chan struct{})
	defer close(quit)
	s.ctx = ctx
	s.lines = make(chan read)
	go s.feed(s.lines, quit)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.mainMenu()
		option, err := s.readLine("Escolha uma opção: ")
		if err != nil {
			return s.stop(err)
		}

		switch option {
		case "1":
			s.showProducts()
		case "2":
			err = s.addToCart()
		case "3":
			s.showCart()
		case "4":
			err = s.removeFromCart()
		case "5":
			err = s.finalize()
		case "6":
			err = s.adminLogin(ctx)
		case "7":
			s.println("Saindo do sistema. Até logo!")
			return nil
		default:
			s.println("Opção inválida, tente novamente.")
		}
		if err != nil {
			return s.stop(err)
		}
	}
}

func (s *Session) stop(err error) error {
	if errors.Is(err, io.EOF) {
		s.log.Debug("input closed")
		return nil
	}
	return err
}

// ─── Prompts ──────────────────────────────────────────────────────────────────

// feed reads lines until the input fails or Run returns.
func (s *Session) feed(lines chan<- read, quit <-chan struct{}) {
	defer close(lines)
	for {
		line, err := s.in.ReadString('\n')
		select {
		case lines <- read{line: line, err: err}:
		case <-quit:
			return
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	var (
		r  read
		ok bool
	)
	select {
	case <-s.ctx.Done():
		s.log.Debug("prompt interrupted")
		return "", s.ctx.Err()
	case r, ok = <-s.lines:
		if !ok {
			return "", io.EOF
		}
	}
	line, err := r.line, r.err
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readInt asks until the answer is a whole number.
func (s *Session) readInt(prompt string) (int, error) {
	for {
		raw, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n, nil
		}
		s.println("Digite um número inteiro válido.")
	}
}

// readPrice asks until the answer is a decimal number.
func (s *Session) readPrice(prompt string) (decimal.Decimal, error) {
	for {
		raw, err := s.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := services.ParsePrice(raw)
		if err == nil {
			return d, nil
		}
		s.println("Digite um número decimal válido.")
	}
}

func (s *Session) println(a ...any) { fmt.Fprintln(s.out, a...) }

func (s *Session) printf(format string, a ...any) { fmt.Fprintf(s.out, format, a...) }

// fail prints a rejected operation and keeps the session going. Errors that
// are not recoverable are handed back to stop the session.
func (s *Session) fail(err error) error {
	e := pkgerrors.As(err)
	if e == nil || !e.Code().Recoverable() {
		return err
	}
	s.log.Debug("operation rejected", "code", e.Code(), "error", e.Message())
	s.println(message(e))
	return nil
}

func message(e *pkgerrors.Error) string {
	switch e.Code() {
	case pkgerrors.CodeInsufficientStock:
		available, _ := e.Detail("available")
		return fmt.Sprintf("Estoque insuficiente! Disponível: %v", available)
	case pkgerrors.CodeInvalidQuantity:
		return "A quantidade deve ser maior que 0."
	case pkgerrors.CodeNotFound:
		return "Código inválido."
	case pkgerrors.CodeEmptyCart:
		return "\nCarrinho está vazio!"
	case pkgerrors.CodeInvalidIdentity:
		return "CPF inválido!"
	case pkgerrors.CodeDuplicate:
		return "Admin já cadastrado!"
	case pkgerrors.CodeLastAdminProtected:
		return "Não é possível remover o último administrador!"
	case pkgerrors.CodeProductInCart:
		return "Produto está no carrinho. Remova-o do carrinho antes de excluir."
	default:
		return "Valores inválidos: " + e.Message()
	}
}
