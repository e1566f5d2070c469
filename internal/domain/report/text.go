package report

import (
	"fmt"
	"strings"

	"github.com/sangkips/sales-api/internal/domain/entity"
)

const noneLabel = "none"

// BuildTextReport renders the plain-text sales report. The layout is fixed:
// header, one line per sale, busiest day, total revenue, highest revenue day,
// product statistics, daily revenue.
func BuildTextReport(sales []entity.Sale) string {
	ordered := sortedByDate(sales)

	var b strings.Builder
	b.WriteString("Sales Report:\n")
	b.WriteString("==================\n")

	for i := range ordered {
		s := &ordered[i]
		fmt.Fprintf(&b, "Product: %s, Amount: %s, Price: %s, Revenue: %s, Date: %s\n",
			s.ProductName,
			FormatQuantity(s.Amount),
			FormatMoney(s.Price),
			FormatMoney(s.Revenue()),
			formatDateTime(s.Date),
		)
	}

	fmt.Fprintf(&b, "\n%s\n", busiestDayLine(ordered))
	fmt.Fprintf(&b, "\n%s\n", totalRevenueLine(ordered))
	fmt.Fprintf(&b, "\n%s\n", highestRevenueDayLine(ordered))

	b.WriteString("\nProduct Statistics:\n")
	for _, p := range GroupByProduct(ordered) {
		fmt.Fprintf(&b, "Product: %s, Total Amount: %s, Total Revenue: %s\n",
			p.ProductName, FormatQuantity(p.TotalAmount), FormatMoney(p.TotalRevenue))
	}

	b.WriteString("\nDaily Revenue:\n")
	for _, d := range GroupByDate(ordered) {
		fmt.Fprintf(&b, "Date: %s, Total Revenue: %s\n", FormatDate(d.Date), FormatMoney(d.TotalRevenue))
	}

	return b.String()
}

func busiestDayLine(sales []entity.Sale) string {
	day, ok := BusiestDay(sales)
	if !ok {
		return "Date with highest sales: " + noneLabel
	}
	return fmt.Sprintf("Date with highest sales: %s, Sales Count: %d", FormatDate(day.Date), day.Count)
}

func totalRevenueLine(sales []entity.Sale) string {
	return "Total Revenue: " + FormatMoney(TotalRevenue(sales))
}

func highestRevenueDayLine(sales []entity.Sale) string {
	day, ok := HighestRevenueDay(sales)
	if !ok {
		return "Day with highest revenue: " + noneLabel
	}
	return fmt.Sprintf("Day with highest revenue: %s, Revenue: %s", FormatDate(day.Date), FormatMoney(day.TotalRevenue))
}
