package service

import (
	"context"
	"time"

	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/sangkips/sales-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService handles sale-related operations. The acting user is always
// passed in explicitly as a username.
type SaleService struct {
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, userRepo repository.UserRepository, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo: saleRepo,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// SaleInput represents the writable fields of a sale.
// ID is only meaningful for updates, Version is optional.
type SaleInput struct {
	ID          uint
	ProductName string
	Amount      decimal.Decimal
	Price       decimal.Decimal
	Date        *time.Time
	Version     int
}

// List returns every sale, ascending by date
func (s *SaleService) List(ctx context.Context) ([]entity.Sale, error) {
	return s.saleRepo.ListAll(ctx, repository.DateWindow{})
}

// ListPage returns one page of sales matching the filter and the total match count
func (s *SaleService) ListPage(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}

// Get returns a sale by ID
func (s *SaleService) Get(ctx context.Context, id uint) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.ErrSaleNotFound
	}
	return sale, nil
}

// Create records a sale owned by caller. caller must be a registered user.
func (s *SaleService) Create(ctx context.Context, input *SaleInput, caller string) (sale *entity.Sale, err error) {
	defer func() { saleMutationsTotal.WithLabelValues("create", statusLabel(err)).Inc() }()

	if err := s.requireUser(ctx, caller); err != nil {
		return nil, err
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	sale = &entity.Sale{
		ProductName: input.ProductName,
		Amount:      input.Amount,
		Price:       input.Price,
		Date:        date.UTC(),
		Username:    caller,
		Version:     1,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		s.logger.Error("failed to save sale", zap.String("username", caller), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale created",
		zap.Uint("sale_id", sale.ID),
		zap.String("username", caller),
		zap.String("product_name", sale.ProductName),
	)
	return sale, nil
}

// Update replaces the sale with the given id. Only the user who recorded the
// sale may update it, and the write is rejected if the sale changed since it was read.
func (s *SaleService) Update(ctx context.Context, id uint, input *SaleInput, caller string) (sale *entity.Sale, err error) {
	defer func() { saleMutationsTotal.WithLabelValues("update", statusLabel(err)).Inc() }()

	if input.ID != id {
		return nil, apperror.ErrIDMismatch
	}

	if err := s.requireUser(ctx, caller); err != nil {
		return nil, err
	}

	existing, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.ErrSaleNotFound
	}

	if existing.Username != caller {
		s.logger.Warn("sale update by non-owner rejected",
			zap.Uint("sale_id", id),
			zap.String("owner", existing.Username),
			zap.String("username", caller),
		)
		return nil, apperror.ErrSaleForbidden
	}

	if input.Version != 0 && input.Version != existing.Version {
		return nil, apperror.ErrStaleWrite
	}

	date := existing.Date
	if input.Date != nil {
		date = *input.Date
	}

	updated := *existing
	updated.ProductName = input.ProductName
	updated.Amount = input.Amount
	updated.Price = input.Price
	updated.Date = date.UTC()
	updated.Username = caller
	updated.UpdatedAt = s.now().UTC()

	applied, err := s.saleRepo.Update(ctx, &updated, existing.Version)
	if err != nil {
		s.logger.Error("failed to update sale", zap.Uint("sale_id", id), zap.Error(err))
		return nil, err
	}
	if !applied {
		s.logger.Info("stale sale update rejected", zap.Uint("sale_id", id), zap.Int("version", existing.Version))
		return nil, apperror.ErrStaleWrite
	}

	s.logger.Info("sale updated", zap.Uint("sale_id", id), zap.Int("version", updated.Version))
	return &updated, nil
}

// Delete permanently removes a sale
func (s *SaleService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { saleMutationsTotal.WithLabelValues("delete", statusLabel(err)).Inc() }()

	existing, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.ErrSaleNotFound
	}

	if err := s.saleRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete sale", zap.Uint("sale_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("sale deleted", zap.Uint("sale_id", id))
	return nil
}

func (s *SaleService) requireUser(ctx context.Context, username string) error {
	if username == "" {
		return apperror.ErrInvalidOwner
	}
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("error validating user", zap.String("username", username), zap.Error(err))
		return err
	}
	if !exists {
		return apperror.ErrInvalidOwner
	}
	return nil
}
