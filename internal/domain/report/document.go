package report

import (
	"strconv"

	"github.com/sangkips/sales-api/internal/domain/entity"
)

// ChartPlaceholder is printed in place of a chart whose data is insufficient
const ChartPlaceholder = "No sales data available to generate chart."

// Table is a titled grid of already formatted cells
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Document is the complete, ordered content of the printable sales report.
// Page layout is left to the renderer.
type Document struct {
	Title           string
	Sales           Table
	Summary         []string
	ProductStats    Table
	DailyRevenue    Table
	TopSellers      Table
	SalesOverTime   Series
	RevenueOverTime Series
	SellerRanking   Ranking
}

// BuildDocument composes the printable report
func BuildDocument(sales []entity.Sale) Document {
	ordered := sortedByDate(sales)

	doc := Document{
		Title: "Sales Report",
		Sales: Table{
			Header: []string{"Product", "Amount", "Price", "Revenue", "Date"},
		},
		Summary: []string{
			busiestDayLine(ordered),
			totalRevenueLine(ordered),
			highestRevenueDayLine(ordered),
		},
		ProductStats: Table{
			Title:  "Product Statistics",
			Header: []string{"Product", "Total Amount", "Total Revenue"},
		},
		DailyRevenue: Table{
			Title:  "Daily Revenue",
			Header: []string{"Date", "Total Revenue"},
		},
		TopSellers: Table{
			Title:  "Top Sellers",
			Header: []string{"Username", "Sales", "Total Revenue"},
		},
		SalesOverTime:   BuildChartSeries(ordered),
		RevenueOverTime: BuildRevenueSeries(ordered),
		SellerRanking:   BuildSellerRanking(ordered, SellerRankingLimit),
	}

	for i := range ordered {
		s := &ordered[i]
		doc.Sales.Rows = append(doc.Sales.Rows, []string{
			s.ProductName,
			FormatQuantity(s.Amount),
			FormatMoney(s.Price),
			FormatMoney(s.Revenue()),
			FormatDate(s.Date),
		})
	}

	for _, p := range GroupByProduct(ordered) {
		doc.ProductStats.Rows = append(doc.ProductStats.Rows, []string{
			p.ProductName, FormatQuantity(p.TotalAmount), FormatMoney(p.TotalRevenue),
		})
	}

	for _, d := range GroupByDate(ordered) {
		doc.DailyRevenue.Rows = append(doc.DailyRevenue.Rows, []string{
			FormatDate(d.Date), FormatMoney(d.TotalRevenue),
		})
	}

	for _, s := range GroupBySeller(ordered, TopSellersLimit) {
		doc.TopSellers.Rows = append(doc.TopSellers.Rows, []string{
			s.Username, strconv.Itoa(s.Count), FormatMoney(s.TotalRevenue),
		})
	}

	return doc
}
