package request

import (
	"strings"
	"time"

	"github.com/sangkips/sales-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest represents a sale creation request. The seller is always the caller.
type CreateSaleRequest struct {
	ProductName string          `json:"product_name" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Price       decimal.Decimal `json:"price"`
	Date        *time.Time      `json:"date"`
}

// UpdateSaleRequest represents a full replacement of a sale.
// Version is optional; when set it must match the stored version.
type UpdateSaleRequest struct {
	ID          uint            `json:"id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Price       decimal.Decimal `json:"price"`
	Date        *time.Time      `json:"date"`
	Version     int             `json:"version" binding:"min=0"`
}

// SaleFilterRequest represents sale listing parameters
type SaleFilterRequest struct {
	Search    string `form:"search"`
	Username  string `form:"username"`
	From      string `form:"from"`
	To        string `form:"to"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// ReportRequest restricts a report to sales dated between From and To, both
// inclusive and formatted as yyyy-mm-dd
type ReportRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Validate checks the fields binding tags cannot express
func (r *CreateSaleRequest) Validate() []apperror.FieldError {
	return validateSaleFields(r.ProductName, r.Amount, r.Price)
}

// Validate checks the fields binding tags cannot express
func (r *UpdateSaleRequest) Validate() []apperror.FieldError {
	return validateSaleFields(r.ProductName, r.Amount, r.Price)
}

func validateSaleFields(productName string, amount, price decimal.Decimal) []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(productName) == "" {
		errs = append(errs, apperror.FieldError{Field: "product_name", Message: "product_name is required"})
	}
	if amount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "amount", Message: "amount must not be negative"})
	}
	if price.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "price", Message: "price must not be negative"})
	}
	return errs
}
