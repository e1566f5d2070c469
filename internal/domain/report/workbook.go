package report

import (
	"sort"

	"github.com/sangkips/sales-api/internal/domain/entity"
)

// Sheet names in workbook order
const (
	SheetAllSales   = "All Sales"
	SheetByDate     = "By Date"
	SheetByUsername = "By Username"
	SheetByProduct  = "By Product"
	SheetSummary    = "Summary"
)

// Workbook is the spreadsheet export of a sale set. Sheet order is fixed.
type Workbook struct {
	Sheets []Sheet
}

// Sheet holds an optional header row followed by data rows. Cell values are
// string, int, uint, decimal.Decimal or time.Time.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Sheet looks up a sheet by name
func (w Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// BuildWorkbook composes the five-sheet spreadsheet export
func BuildWorkbook(sales []entity.Sale) Workbook {
	ordered := sortedByDate(sales)

	all := Sheet{
		Name:   SheetAllSales,
		Header: []string{"Id", "ProductName", "Amount", "Date", "Price", "Username", "Revenue"},
	}
	for _, s := range ordered {
		all.Rows = append(all.Rows, []any{s.ID, s.ProductName, s.Amount, s.Date, s.Price, s.Username, s.Revenue()})
	}

	byDate := Sheet{
		Name:   SheetByDate,
		Header: []string{"Date", "TotalAmount", "TotalRevenue", "Count"},
	}
	for _, d := range GroupByDate(ordered) {
		byDate.Rows = append(byDate.Rows, []any{d.Date, d.TotalAmount, d.TotalRevenue, d.Count})
	}

	sellers := GroupBySeller(ordered, 0)
	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].Username < sellers[j].Username
	})
	byUsername := Sheet{
		Name:   SheetByUsername,
		Header: []string{"Username", "TotalAmount", "TotalRevenue"},
	}
	for _, s := range sellers {
		byUsername.Rows = append(byUsername.Rows, []any{s.Username, s.TotalAmount, s.TotalRevenue})
	}

	products := GroupByProduct(ordered)
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].ProductName < products[j].ProductName
	})
	byProduct := Sheet{
		Name:   SheetByProduct,
		Header: []string{"ProductName", "TotalAmount", "TotalRevenue"},
	}
	for _, p := range products {
		byProduct.Rows = append(byProduct.Rows, []any{p.ProductName, p.TotalAmount, p.TotalRevenue})
	}

	summary := Sheet{
		Name: SheetSummary,
		Rows: [][]any{
			{"Total Sales", len(ordered)},
			{"Total Revenue", TotalRevenue(ordered)},
		},
	}

	return Workbook{Sheets: []Sheet{all, byDate, byUsername, byProduct, summary}}
}
