package repository

import (
	"context"
	"time"

	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/sangkips/sales-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uint) (*entity.Sale, error)
	// Update writes sale only while the stored version still equals expectedVersion
	// and bumps the version on success. Returns (false, nil) when another writer got there first.
	Update(ctx context.Context, sale *entity.Sale, expectedVersion int) (bool, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListAll returns every sale inside the window, ascending by date then id
	ListAll(ctx context.Context, window DateWindow) ([]entity.Sale, error)
}

// DateWindow restricts a query to sales dated within [From, To). Nil bounds are open.
type DateWindow struct {
	From *time.Time
	To   *time.Time
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Username   string
	Window     DateWindow
	SortOrder  string
}
