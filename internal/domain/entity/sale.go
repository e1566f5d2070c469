package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a single sale transaction
type Sale struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProductName string          `gorm:"size:255;not null;index" json:"product_name"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Price       decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"price"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Username    string          `gorm:"size:255;not null;index" json:"username"`
	Version     int             `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Revenue is always derived from amount and price, never stored
func (s *Sale) Revenue() decimal.Decimal {
	return s.Amount.Mul(s.Price)
}

// MarshalJSON adds the derived revenue to API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Revenue decimal.Decimal `json:"revenue"`
	}{
		Alias:   Alias(s),
		Revenue: s.Revenue(),
	})
}

// Day returns the calendar day of the sale in UTC
func (s *Sale) Day() time.Time {
	d := s.Date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}
