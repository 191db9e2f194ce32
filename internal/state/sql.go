package state

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/mercado/app/models"
	"github.com/shashiranjanraj/mercado/app/services"
	"github.com/shashiranjanraj/mercado/pkg/database"
)

type productRow struct {
	Code  int             `gorm:"primaryKey;autoIncrement:false"`
	Name  string          `gorm:"size:255;not null"`
	Price decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Stock int             `gorm:"not null"`
}

func (productRow) TableName() string { return "products" }

type cartRow struct {
	ProductCode int `gorm:"primaryKey;autoIncrement:false"`
	Position    int `gorm:"not null"`
	Quantity    int `gorm:"not null"`
}

func (cartRow) TableName() string { return "cart_entries" }

type adminRow struct {
	CPF      string `gorm:"column:cpf;primaryKey;size:11"`
	Secret   string `gorm:"size:255;not null"`
	Position int    `gorm:"not null"`
}

func (adminRow) TableName() string { return "admins" }

type metaRow struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:255;not null"`
}

func (metaRow) TableName() string { return "market_meta" }

const (
	metaLastCode = "last_code"
	metaSavedAt  = "saved_at"
)

// SQLStore keeps the market in four tables. Save replaces every row inside
// one transaction.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the schema and returns the store. It owns db.
func NewSQLStore(ctx context.Context, db *gorm.DB) (*SQLStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&productRow{}, &cartRow{}, &adminRow{}, &metaRow{}); err != nil {
		return nil, fmt.Errorf("state: migrate: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Describe() string { return "sql:" + s.db.Dialector.Name() }

func (s *SQLStore) Close() error { return database.Close(s.db) }

func (s *SQLStore) Load(ctx context.Context) (services.State, bool, error) {
	db := s.db.WithContext(ctx)

	var meta []metaRow
	if err := db.Find(&meta).Error; err != nil {
		return services.State{}, false, fmt.Errorf("state: load meta: %w", err)
	}
	values := make(map[string]string, len(meta))
	for _, m := range meta {
		values[m.Key] = m.Value
	}
	if _, saved := values[metaSavedAt]; !saved {
		return services.State{}, false, nil
	}

	var out services.State
	if raw, ok := values[metaLastCode]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return services.State{}, false, corrupt("last code "+raw, err)
		}
		out.LastCode = n
	}

	var products []productRow
	if err := db.Order("code").Find(&products).Error; err != nil {
		return services.State{}, false, fmt.Errorf("state: load products: %w", err)
	}
	for _, p := range products {
		out.Products = append(out.Products, models.Product{Code: p.Code, Name: p.Name, Price: p.Price, Stock: p.Stock})
	}

	var cart []cartRow
	if err := db.Order("position").Find(&cart).Error; err != nil {
		return services.State{}, false, fmt.Errorf("state: load cart: %w", err)
	}
	for _, c := range cart {
		out.Cart = append(out.Cart, models.CartEntry{ProductCode: c.ProductCode, Quantity: c.Quantity})
	}

	var admins []adminRow
	if err := db.Order("position").Find(&admins).Error; err != nil {
		return services.State{}, false, fmt.Errorf("state: load admins: %w", err)
	}
	for _, a := range admins {
		out.Admins = append(out.Admins, models.AdminCredential{CPF: a.CPF, Secret: a.Secret})
	}

	return out, true, nil
}

func (s *SQLStore) Save(ctx context.Context, st services.State) error {
	products := make([]productRow, 0, len(st.Products))
	for _, p := range st.Products {
		products = append(products, productRow{Code: p.Code, Name: p.Name, Price: p.Price, Stock: p.Stock})
	}
	cart := make([]cartRow, 0, len(st.Cart))
	for i, e := range st.Cart {
		cart = append(cart, cartRow{ProductCode: e.ProductCode, Position: i, Quantity: e.Quantity})
	}
	admins := make([]adminRow, 0, len(st.Admins))
	for i, a := range st.Admins {
		admins = append(admins, adminRow{CPF: a.CPF, Secret: a.Secret, Position: i})
	}
	meta := []metaRow{
		{Key: metaLastCode, Value: strconv.Itoa(st.LastCode)},
		{Key: metaSavedAt, Value: time.Now().UTC().Format(time.RFC3339)},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&productRow{}, &cartRow{}, &adminRow{}, &metaRow{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
		}
		if len(cart) > 0 {
			if err := tx.Create(&cart).Error; err != nil {
				return err
			}
		}
		if len(admins) > 0 {
			if err := tx.Create(&admins).Error; err != nil {
				return err
			}
		}
		return tx.Create(&meta).Error
	})
	if err != nil {
		return fmt.Errorf("state: save %s: %w", s.Describe(), err)
	}
	return nil
}
