package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-api/internal/application/service"
	"github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/sangkips/sales-api/internal/presentation/http/dto/request"
	"github.com/sangkips/sales-api/internal/presentation/http/dto/response"
	"github.com/sangkips/sales-api/pkg/pagination"
	"github.com/sangkips/sales-api/pkg/utils"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales page by page
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	window, err := parseWindow(filter.From, filter.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		Username:  filter.Username,
		Window:    window,
		SortOrder: filter.SortOrder,
	}
	params.Pagination.Validate()

	sales, total, err := h.saleService.ListPage(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles fetching a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Create handles recording a sale for the caller
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), &service.SaleInput{
		ProductName: req.ProductName,
		Amount:      req.Amount,
		Price:       req.Price,
		Date:        req.Date,
	}, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Update handles replacing a sale owned by the caller
func (h *SaleHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), id, &service.SaleInput{
		ID:          req.ID,
		ProductName: req.ProductName,
		Amount:      req.Amount,
		Price:       req.Price,
		Date:        req.Date,
		Version:     req.Version,
	}, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", sale)
}

// Delete handles removing a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale deleted successfully", gin.H{"id": id})
}
