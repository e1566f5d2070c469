package report

import (
	"time"

	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	// TopSellersLimit is the number of sellers listed in the top sellers table
	TopSellersLimit = 3
	// SellerRankingLimit is the number of sellers drawn in the ranking chart
	SellerRankingLimit = 10
)

// TableRow is one line of the plain sales listing
type TableRow struct {
	ProductName string          `json:"product_name"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// SeriesPoint is one dated value of a chart series
type SeriesPoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Series is the data a front end or renderer needs to draw a time chart.
// When InsufficientData is set the caller shows a placeholder instead of a chart.
type Series struct {
	Title            string        `json:"title"`
	XLabel           string        `json:"x_label"`
	YLabel           string        `json:"y_label"`
	Points           []SeriesPoint `json:"points"`
	InsufficientData bool          `json:"insufficient_data"`
}

// Bar is one labelled value of a ranking
type Bar struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Ranking is the data behind the seller ranking bar chart
type Ranking struct {
	Title            string `json:"title"`
	XLabel           string `json:"x_label"`
	YLabel           string `json:"y_label"`
	Bars             []Bar  `json:"bars"`
	InsufficientData bool   `json:"insufficient_data"`
}

// Summary is the dashboard view of a sale set
type Summary struct {
	TotalSales        int              `json:"total_sales"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
	BusiestDay        *DateSummary     `json:"busiest_day"`
	HighestRevenueDay *DateSummary     `json:"highest_revenue_day"`
	TopSellers        []SellerSummary  `json:"top_sellers"`
	Products          []ProductSummary `json:"products"`
	Days              []DateSummary    `json:"days"`
}

// BuildTable lists product, amount and date of every sale, ascending by date
func BuildTable(sales []entity.Sale) []TableRow {
	ordered := sortedByDate(sales)
	rows := make([]TableRow, 0, len(ordered))
	for _, s := range ordered {
		rows = append(rows, TableRow{
			ProductName: s.ProductName,
			Amount:      s.Amount,
			Date:        s.Date,
		})
	}
	return rows
}

// BuildChartSeries returns the total amount sold per day, ascending by date
func BuildChartSeries(sales []entity.Sale) Series {
	days := GroupByDate(sales)
	points := make([]SeriesPoint, 0, len(days))
	for _, d := range days {
		points = append(points, SeriesPoint{Date: d.Date, Value: d.TotalAmount})
	}
	return newSeries("Sales Over Time", "Total Amount", points)
}

// BuildRevenueSeries returns the total revenue per day, ascending by date
func BuildRevenueSeries(sales []entity.Sale) Series {
	days := GroupByDate(sales)
	points := make([]SeriesPoint, 0, len(days))
	for _, d := range days {
		points = append(points, SeriesPoint{Date: d.Date, Value: d.TotalRevenue})
	}
	return newSeries("Revenue Over Time", "Total Revenue", points)
}

// BuildSellerRanking returns the top sellers by revenue as bars
func BuildSellerRanking(sales []entity.Sale, limit int) Ranking {
	sellers := GroupBySeller(sortedByDate(sales), limit)
	bars := make([]Bar, 0, len(sellers))
	peak := decimal.Zero
	for _, s := range sellers {
		bars = append(bars, Bar{Label: s.Username, Value: s.TotalRevenue})
		if s.TotalRevenue.GreaterThan(peak) {
			peak = s.TotalRevenue
		}
	}
	return Ranking{
		Title:            "Top Sellers by Revenue",
		XLabel:           "Username",
		YLabel:           "Total Revenue",
		Bars:             bars,
		InsufficientData: len(bars) == 0 || peak.Sign() <= 0,
	}
}

// BuildSummary returns the headline figures of a sale set
func BuildSummary(sales []entity.Sale) Summary {
	ordered := sortedByDate(sales)
	summary := Summary{
		TotalSales:   len(ordered),
		TotalAmount:  TotalAmount(ordered),
		TotalRevenue: TotalRevenue(ordered),
		TopSellers:   GroupBySeller(ordered, TopSellersLimit),
		Products:     GroupByProduct(ordered),
		Days:         GroupByDate(ordered),
	}
	if day, ok := BusiestDay(ordered); ok {
		summary.BusiestDay = &day
	}
	if day, ok := HighestRevenueDay(ordered); ok {
		summary.HighestRevenueDay = &day
	}
	return summary
}

// newSeries flags series that cannot be drawn: fewer than two points, or nothing above zero
func newSeries(title, yLabel string, points []SeriesPoint) Series {
	peak := decimal.Zero
	for _, p := range points {
		if p.Value.GreaterThan(peak) {
			peak = p.Value
		}
	}
	return Series{
		Title:            title,
		XLabel:           "Date",
		YLabel:           yLabel,
		Points:           points,
		InsufficientData: len(points) < 2 || peak.Sign() <= 0,
	}
}
