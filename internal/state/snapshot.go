package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/mercado/app/models"
	"github.com/shashiranjanraj/mercado/app/services"
	pkgerrors "github.com/shashiranjanraj/mercado/pkg/errors"
)

// Snapshot is the persisted document. Field names match the files written
// by earlier versions of the program.
type Snapshot struct {
	Products []ProductDoc       `json:"produtos"`
	Cart     map[string]CartDoc `json:"carrinho"`
	Admins   []AdminDoc         `json:"admins"`
	LastCode int                `json:"ultimo_codigo,omitempty"`
}

type ProductDoc struct {
	Code  int         `json:"codigo"`
	Name  string      `json:"nome"`
	Price json.Number `json:"preco"`
	Stock int         `json:"estoque"`
}

type CartDoc struct {
	Quantity int `json:"quantidade"`
}

type AdminDoc struct {
	CPF    string `json:"cpf"`
	Secret string `json:"senha"`
}

// FromState converts market state into its document form.
func FromState(s services.State) Snapshot {
	snap := Snapshot{
		Products: make([]ProductDoc, 0, len(s.Products)),
		Cart:     make(map[string]CartDoc, len(s.Cart)),
		Admins:   make([]AdminDoc, 0, len(s.Admins)),
		LastCode: s.LastCode,
	}
	for _, p := range s.Products {
		snap.Products = append(snap.Products, ProductDoc{
			Code:  p.Code,
			Name:  p.Name,
			Price: json.Number(p.Price.String()),
			Stock: p.Stock,
		})
	}
	for _, e := range s.Cart {
		snap.Cart[strconv.Itoa(e.ProductCode)] = CartDoc{Quantity: e.Quantity}
	}
	for _, a := range s.Admins {
		snap.Admins = append(snap.Admins, AdminDoc{CPF: a.CPF, Secret: a.Secret})
	}
	return snap
}

// State converts the document back. Only shape errors are reported here;
// the domain rules are checked by services.Restore.
func (s Snapshot) State() (services.State, error) {
	out := services.State{LastCode: s.LastCode}

	for i, p := range s.Products {
		if p.Price == "" {
			return services.State{}, corrupt(fmt.Sprintf("product #%d has no price", i+1), nil)
		}
		price, err := decimal.NewFromString(p.Price.String())
		if err != nil {
			return services.State{}, corrupt(fmt.Sprintf("product %d price %q", p.Code, p.Price), err)
		}
		out.Products = append(out.Products, models.Product{
			Code:  p.Code,
			Name:  p.Name,
			Price: price,
			Stock: p.Stock,
		})
	}

	for key, e := range s.Cart {
		code, err := strconv.Atoi(key)
		if err != nil {
			return services.State{}, corrupt(fmt.Sprintf("cart key %q", key), err)
		}
		out.Cart = append(out.Cart, models.CartEntry{ProductCode: code, Quantity: e.Quantity})
	}
	// Maps have no order; keep the cart stable by code.
	sort.Slice(out.Cart, func(i, j int) bool { return out.Cart[i].ProductCode < out.Cart[j].ProductCode })

	for _, a := range s.Admins {
		out.Admins = append(out.Admins, models.AdminCredential{CPF: a.CPF, Secret: a.Secret})
	}
	return out, nil
}

// Encode writes the snapshot as indented JSON without HTML escaping.
func Encode(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("state: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a snapshot. Any syntax or type error is CORRUPT_STATE.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, corrupt("decode snapshot", err)
	}
	return s, nil
}

func corrupt(what string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeCorruptState, err, "unreadable state: "+what)
}
