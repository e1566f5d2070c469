package service

import (
	"bytes"
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/sangkips/sales-api/internal/domain/report"
	"github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/sangkips/sales-api/internal/infrastructure/render"
	"go.uber.org/zap"
)

// Report formats, also used as metric labels
const (
	FormatTable    = "table"
	FormatChart    = "chart"
	FormatSummary  = "summary"
	FormatText     = "text"
	FormatWorkbook = "xlsx"
	FormatDocument = "pdf"
)

// ReportService builds reports from the sale set. Each call reads the sales
// once and derives the whole report from that single snapshot.
type ReportService struct {
	saleRepo repository.SaleRepository
	logger   *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(saleRepo repository.SaleRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		saleRepo: saleRepo,
		logger:   logger,
	}
}

// Table lists product, amount and date of every sale in the window
func (s *ReportService) Table(ctx context.Context, window repository.DateWindow) ([]report.TableRow, error) {
	sales, done, err := s.fetch(ctx, FormatTable, window)
	if err != nil {
		return nil, err
	}
	rows := report.BuildTable(sales)
	done(nil)
	return rows, nil
}

// Chart returns the daily sales series
func (s *ReportService) Chart(ctx context.Context, window repository.DateWindow) (report.Series, error) {
	sales, done, err := s.fetch(ctx, FormatChart, window)
	if err != nil {
		return report.Series{}, err
	}
	series := report.BuildChartSeries(sales)
	done(nil)
	return series, nil
}

// Summary returns the headline figures of the sale set
func (s *ReportService) Summary(ctx context.Context, window repository.DateWindow) (report.Summary, error) {
	sales, done, err := s.fetch(ctx, FormatSummary, window)
	if err != nil {
		return report.Summary{}, err
	}
	summary := report.BuildSummary(sales)
	done(nil)
	return summary, nil
}

// Text returns the plain-text report
func (s *ReportService) Text(ctx context.Context, window repository.DateWindow) (string, error) {
	sales, done, err := s.fetch(ctx, FormatText, window)
	if err != nil {
		return "", err
	}
	text := report.BuildTextReport(sales)
	done(nil)
	return text, nil
}

// Workbook returns the report encoded as an .xlsx file
func (s *ReportService) Workbook(ctx context.Context, window repository.DateWindow) ([]byte, error) {
	sales, done, err := s.fetch(ctx, FormatWorkbook, window)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = render.WriteWorkbook(&buf, report.BuildWorkbook(sales))
	done(err)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Document returns the report encoded as a PDF file
func (s *ReportService) Document(ctx context.Context, window repository.DateWindow) ([]byte, error) {
	sales, done, err := s.fetch(ctx, FormatDocument, window)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = render.WriteDocument(&buf, report.BuildDocument(sales))
	done(err)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fetch loads the sale snapshot for one report and returns a callback that
// records the outcome once the report is built
func (s *ReportService) fetch(ctx context.Context, format string, window repository.DateWindow) ([]entity.Sale, func(error), error) {
	timer := prometheus.NewTimer(reportBuildDuration.WithLabelValues(format))
	start := time.Now()

	done := func(err error) {
		timer.ObserveDuration()
		reportsGeneratedTotal.WithLabelValues(format, statusLabel(err)).Inc()
		if err != nil {
			s.logger.Error("failed to render report", zap.String("format", format), zap.Error(err))
			return
		}
		s.logger.Debug("report generated",
			zap.String("format", format),
			zap.Duration("took", time.Since(start)),
		)
	}

	sales, err := s.saleRepo.ListAll(ctx, window)
	if err != nil {
		s.logger.Error("failed to load sales for report", zap.String("format", format), zap.Error(err))
		reportsGeneratedTotal.WithLabelValues(format, statusLabel(err)).Inc()
		return nil, nil, err
	}
	return sales, done, nil
}
