package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/sales-api/internal/domain/entity"
	domainRepo "github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/sangkips/sales-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// Update uses: UPDATE sales SET ..., version = version + 1 WHERE id = ? AND version = ?
func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale, expectedVersion int) (bool, error) {
	if sale.UpdatedAt.IsZero() {
		sale.UpdatedAt = time.Now().UTC()
	}
	result := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ? AND version = ?", sale.ID, expectedVersion).
		Updates(map[string]interface{}{
			"product_name": sale.ProductName,
			"amount":       sale.Amount,
			"price":        sale.Price,
			"date":         sale.Date,
			"username":     sale.Username,
			"updated_at":   sale.UpdatedAt,
			"version":      gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	sale.Version = expectedVersion + 1
	return true, nil
}

func (r *saleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Sale{}, id).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).Scopes(dateWindow(params.Window))

	if params.Search != "" {
		query = query.Where("product_name ILIKE ?", "%"+params.Search+"%")
	}

	if params.Username != "" {
		query = query.Where("username = ?", params.Username)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortOrder := "ASC"
	if strings.EqualFold(params.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date " + sortOrder).Order("id " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListAll(ctx context.Context, window domainRepo.DateWindow) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(dateWindow(window)).
		Order("date ASC").Order("id ASC").
		Find(&sales).Error
	return sales, err
}
