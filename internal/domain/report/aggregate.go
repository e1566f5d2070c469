// Package report groups sale records into summaries and composes them into the
// report shapes served by the API. Everything here is pure: inputs are never
// mutated and no function performs I/O, so all of it is safe for concurrent use.
package report

import (
	"sort"
	"time"

	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DateSummary aggregates the sales of one calendar day
type DateSummary struct {
	Date         time.Time       `json:"date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Count        int             `json:"count"`
}

// ProductSummary aggregates the sales of one product name
type ProductSummary struct {
	ProductName  string          `json:"product_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// SellerSummary aggregates the sales recorded by one user
type SellerSummary struct {
	Username     string          `json:"username"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Count        int             `json:"count"`
}

// GroupByDate returns one summary per calendar day, ascending by date.
// The time of day is discarded.
func GroupByDate(sales []entity.Sale) []DateSummary {
	index := make(map[time.Time]int)
	out := make([]DateSummary, 0)

	for i := range sales {
		s := &sales[i]
		day := s.Day()
		pos, ok := index[day]
		if !ok {
			pos = len(out)
			index[day] = pos
			out = append(out, DateSummary{Date: day})
		}
		out[pos].TotalAmount = out[pos].TotalAmount.Add(s.Amount)
		out[pos].TotalRevenue = out[pos].TotalRevenue.Add(s.Revenue())
		out[pos].Count++
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// GroupByProduct returns one summary per distinct product name (case-sensitive),
// in the order each product is first encountered.
func GroupByProduct(sales []entity.Sale) []ProductSummary {
	index := make(map[string]int)
	out := make([]ProductSummary, 0)

	for i := range sales {
		s := &sales[i]
		pos, ok := index[s.ProductName]
		if !ok {
			pos = len(out)
			index[s.ProductName] = pos
			out = append(out, ProductSummary{ProductName: s.ProductName})
		}
		out[pos].TotalAmount = out[pos].TotalAmount.Add(s.Amount)
		out[pos].TotalRevenue = out[pos].TotalRevenue.Add(s.Revenue())
	}
	return out
}

// GroupBySeller returns one summary per username sorted by revenue, highest first.
// Ties keep the order in which sellers were first encountered. A positive limit
// truncates the result to that many entries.
func GroupBySeller(sales []entity.Sale, limit int) []SellerSummary {
	index := make(map[string]int)
	out := make([]SellerSummary, 0)

	for i := range sales {
		s := &sales[i]
		pos, ok := index[s.Username]
		if !ok {
			pos = len(out)
			index[s.Username] = pos
			out = append(out, SellerSummary{Username: s.Username})
		}
		out[pos].TotalAmount = out[pos].TotalAmount.Add(s.Amount)
		out[pos].TotalRevenue = out[pos].TotalRevenue.Add(s.Revenue())
		out[pos].Count++
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TotalRevenue sums amount*price over all records; zero for no records
func TotalRevenue(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for i := range sales {
		total = total.Add(sales[i].Revenue())
	}
	return total
}

// TotalAmount sums the quantities sold over all records
func TotalAmount(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for i := range sales {
		total = total.Add(sales[i].Amount)
	}
	return total
}

// BusiestDay returns the day with the most individual sale records.
// Ties go to the earliest day. ok is false when there are no sales.
func BusiestDay(sales []entity.Sale) (day DateSummary, ok bool) {
	days := GroupByDate(sales)
	if len(days) == 0 {
		return DateSummary{}, false
	}

	best := days[0]
	for _, d := range days[1:] {
		if d.Count > best.Count {
			best = d
		}
	}
	return best, true
}

// HighestRevenueDay returns the day with the largest total revenue.
// Ties go to the earliest day. ok is false when there are no sales.
func HighestRevenueDay(sales []entity.Sale) (day DateSummary, ok bool) {
	days := GroupByDate(sales)
	if len(days) == 0 {
		return DateSummary{}, false
	}

	best := days[0]
	for _, d := range days[1:] {
		if d.TotalRevenue.GreaterThan(best.TotalRevenue) {
			best = d
		}
	}
	return best, true
}

// sortedByDate returns a copy of sales ordered by date, then id
func sortedByDate(sales []entity.Sale) []entity.Sale {
	out := make([]entity.Sale, len(sales))
	copy(out, sales)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
