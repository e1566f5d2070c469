package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-api/internal/application/service"
	"github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/sangkips/sales-api/internal/infrastructure/render"
	"github.com/sangkips/sales-api/internal/presentation/http/dto/request"
	"github.com/sangkips/sales-api/internal/presentation/http/dto/response"
)

// Download names of the file reports
const (
	TextReportFilename     = "SalesReport.txt"
	WorkbookReportFilename = "SalesData.xlsx"
	DocumentReportFilename = "SalesReport.pdf"
)

// ReportHandler serves the sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Table lists product, amount and date per sale
func (h *ReportHandler) Table(c *gin.Context) {
	window, ok := h.window(c)
	if !ok {
		return
	}
	rows, err := h.reportService.Table(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales table generated", rows)
}

// Chart returns the daily sales series
func (h *ReportHandler) Chart(c *gin.Context) {
	window, ok := h.window(c)
	if !ok {
		return
	}
	series, err := h.reportService.Chart(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales chart generated", series)
}

// Summary returns totals, best days and top sellers
func (h *ReportHandler) Summary(c *gin.Context) {
	window, ok := h.window(c)
	if !ok {
		return
	}
	summary, err := h.reportService.Summary(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary generated", summary)
}

// Text downloads the plain-text report
func (h *ReportHandler) Text(c *gin.Context) {
	window, ok := h.window(c)
	if !ok {
		return
	}
	text, err := h.reportService.Text(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, render.ContentTypeText, TextReportFilename, []byte(text))
}

// Excel downloads the workbook report
func (h *ReportHandler) Excel(c *gin.Context) {
	window, ok := h.window(c)
	if !ok {
		return
	}
	data, err := h.reportService.Workbook(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, render.ContentTypeXLSX, WorkbookReportFilename, data)
}

// PDF downloads the document report
func (h *ReportHandler) PDF(c *gin.Context) {
	window, ok := h.window(c)
	if !ok {
		return
	}
	data, err := h.reportService.Document(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, render.ContentTypePDF, DocumentReportFilename, data)
}

// window binds the optional from/to query and answers the request itself on failure
func (h *ReportHandler) window(c *gin.Context) (repository.DateWindow, bool) {
	var req request.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return repository.DateWindow{}, false
	}
	window, err := parseWindow(req.From, req.To)
	if err != nil {
		response.Error(c, err)
		return repository.DateWindow{}, false
	}
	return window, true
}
