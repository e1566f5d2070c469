package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/sangkips/sales-api/internal/domain/report"
	"github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
)

func seededReportService(t *testing.T) (*ReportService, *memSaleRepo) {
	t.Helper()
	repo := newMemSaleRepo()
	ctx := context.Background()
	for _, s := range []entity.Sale{
		{ProductName: "A", Amount: decimal.NewFromInt(2), Price: decimal.NewFromInt(10), Date: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), Username: "bob", Version: 1},
		{ProductName: "B", Amount: decimal.NewFromInt(1), Price: decimal.NewFromInt(5), Date: time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), Username: "alice", Version: 1},
		{ProductName: "A", Amount: decimal.NewFromInt(1), Price: decimal.NewFromInt(10), Date: time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC), Username: "bob", Version: 1},
	} {
		s := s
		require.NoError(t, repo.Create(ctx, &s))
	}
	return NewReportService(repo, zaptest.NewLogger(t)), repo
}

func TestReportService_FormatsAgreeOnTotalRevenue(t *testing.T) {
	svc, _ := seededReportService(t)
	ctx := context.Background()

	summary, err := svc.Summary(ctx, repository.DateWindow{})
	require.NoError(t, err)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(35)))

	text, err := svc.Text(ctx, repository.DateWindow{})
	require.NoError(t, err)
	assert.Contains(t, text, "Total Revenue: "+report.FormatMoney(summary.TotalRevenue))

	data, err := svc.Workbook(ctx, repository.DateWindow{})
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	cell, err := f.GetCellValue(report.SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, summary.TotalRevenue.String(), cell)

	pdf, err := svc.Document(ctx, repository.DateWindow{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestReportService_TableAndChart(t *testing.T) {
	svc, _ := seededReportService(t)
	ctx := context.Background()

	rows, err := svc.Table(ctx, repository.DateWindow{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[0].ProductName)

	series, err := svc.Chart(ctx, repository.DateWindow{})
	require.NoError(t, err)
	assert.False(t, series.InsufficientData)
	assert.Len(t, series.Points, 2)
}

func TestReportService_Window(t *testing.T) {
	svc, _ := seededReportService(t)
	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	series, err := svc.Chart(context.Background(), repository.DateWindow{From: &from})
	require.NoError(t, err)
	assert.True(t, series.InsufficientData)
	assert.Len(t, series.Points, 1)

	text, err := svc.Text(context.Background(), repository.DateWindow{From: &from})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(text, "Product: A, Amount:"))
}

func TestReportService_EmptyStore(t *testing.T) {
	svc := NewReportService(newMemSaleRepo(), zaptest.NewLogger(t))

	summary, err := svc.Summary(context.Background(), repository.DateWindow{})
	require.NoError(t, err)
	assert.Nil(t, summary.BusiestDay)
	assert.True(t, summary.TotalRevenue.IsZero())

	text, err := svc.Text(context.Background(), repository.DateWindow{})
	require.NoError(t, err)
	assert.Contains(t, text, "Date with highest sales: none")
}

func TestReportService_StoreError(t *testing.T) {
	svc, repo := seededReportService(t)
	repo.fail = errStoreDown

	_, err := svc.Workbook(context.Background(), repository.DateWindow{})
	assert.ErrorIs(t, err, errStoreDown)

	_, err = svc.Table(context.Background(), repository.DateWindow{})
	assert.ErrorIs(t, err, errStoreDown)
}
