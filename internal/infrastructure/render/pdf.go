package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/sangkips/sales-api/internal/domain/report"
)

const (
	pageMargin  = 15.0
	lineHeight  = 7.0
	chartHeight = 70.0
	fontFamily  = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	headerFill  = rgb{211, 211, 211}
	salesColor  = rgb{31, 119, 180}
	incomeColor = rgb{44, 160, 44}
	rankColor   = rgb{255, 127, 14}
	axisColor   = rgb{80, 80, 80}
)

// pdfWriter wraps fpdf with the layout helpers of the sales report
type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// WriteDocument lays doc out as an A4 PDF: title, sales table, summary lines,
// product and daily tables, top sellers and the three charts. Charts without
// enough data are replaced by a placeholder sentence.
func WriteDocument(w io.Writer, doc report.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	pw := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pw.title(doc.Title)
	pw.table(doc.Sales)
	pw.pdf.Ln(lineHeight / 2)
	for _, line := range doc.Summary {
		pw.paragraph(line)
	}
	pw.table(doc.ProductStats)
	pw.table(doc.DailyRevenue)
	pw.table(doc.TopSellers)
	pw.lineChart(doc.SalesOverTime, salesColor)
	pw.lineChart(doc.RevenueOverTime, incomeColor)
	pw.barChart(doc.SellerRanking, rankColor)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("layout pdf: %w", err)
	}
	return pdf.Output(w)
}

func (p *pdfWriter) contentWidth() float64 {
	width, _ := p.pdf.GetPageSize()
	left, _, right, _ := p.pdf.GetMargins()
	return width - left - right
}

// ensureSpace starts a new page when fewer than h millimetres remain
func (p *pdfWriter) ensureSpace(h float64) {
	_, height := p.pdf.GetPageSize()
	_, _, _, bottom := p.pdf.GetMargins()
	if p.pdf.GetY()+h > height-bottom {
		p.pdf.AddPage()
	}
}

func (p *pdfWriter) title(text string) {
	p.pdf.SetFont(fontFamily, "B", 18)
	p.pdf.CellFormat(0, 12, p.tr(text), "", 1, "C", false, 0, "")
	p.pdf.Ln(lineHeight / 2)
}

func (p *pdfWriter) heading(text string) {
	p.ensureSpace(lineHeight * 3)
	p.pdf.SetFont(fontFamily, "B", 13)
	p.pdf.CellFormat(0, lineHeight+1, p.tr(text), "", 1, "L", false, 0, "")
}

func (p *pdfWriter) paragraph(text string) {
	p.pdf.SetFont(fontFamily, "", 11)
	p.pdf.MultiCell(0, lineHeight, p.tr(text), "", "L", false)
}

func (p *pdfWriter) table(t report.Table) {
	if t.Title != "" {
		p.pdf.Ln(lineHeight / 2)
		p.heading(t.Title)
	}
	if len(t.Header) == 0 {
		return
	}
	colWidth := p.contentWidth() / float64(len(t.Header))

	p.pdf.SetFont(fontFamily, "B", 10)
	p.pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	for _, h := range t.Header {
		p.pdf.CellFormat(colWidth, lineHeight, p.tr(h), "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont(fontFamily, "", 10)
	for _, row := range t.Rows {
		p.ensureSpace(lineHeight)
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			p.pdf.CellFormat(colWidth, lineHeight, p.tr(cell), "1", 0, align, false, 0, "")
		}
		p.pdf.Ln(-1)
	}
}

// chartFrame reserves the drawing area for a chart and returns its plot box
func (p *pdfWriter) chartFrame(title string) (x, y, w, h float64) {
	p.pdf.Ln(lineHeight / 2)
	p.ensureSpace(chartHeight + lineHeight*3)
	p.heading(title)

	left, _, _, _ := p.pdf.GetMargins()
	x = left + 12
	y = p.pdf.GetY() + 2
	w = p.contentWidth() - 14
	h = chartHeight - 12

	p.pdf.SetDrawColor(axisColor.r, axisColor.g, axisColor.b)
	p.pdf.SetLineWidth(0.3)
	p.pdf.Line(x, y, x, y+h)
	p.pdf.Line(x, y+h, x+w, y+h)
	return x, y, w, h
}

func (p *pdfWriter) axisLabels(x, y, w, h float64, xLabel, yLabel, peak string) {
	p.pdf.SetFont(fontFamily, "", 8)
	p.pdf.Text(x-11, y+2, p.tr(peak))
	p.pdf.Text(x-11, y+h, "0")
	p.pdf.Text(x+w/2-p.pdf.GetStringWidth(xLabel)/2, y+h+9, p.tr(xLabel))
	p.pdf.TransformBegin()
	p.pdf.TransformRotate(90, x-8, y+h/2)
	p.pdf.Text(x-8-p.pdf.GetStringWidth(yLabel)/2, y+h/2, p.tr(yLabel))
	p.pdf.TransformEnd()
}

func (p *pdfWriter) placeholder() {
	p.paragraph(report.ChartPlaceholder)
}

func (p *pdfWriter) lineChart(s report.Series, color rgb) {
	if s.InsufficientData {
		p.pdf.Ln(lineHeight / 2)
		p.heading(s.Title)
		p.placeholder()
		return
	}

	x, y, w, h := p.chartFrame(s.Title)

	peak := s.Points[0].Value
	for _, pt := range s.Points[1:] {
		if pt.Value.GreaterThan(peak) {
			peak = pt.Value
		}
	}
	top := peak.InexactFloat64()
	step := w / float64(len(s.Points)-1)

	p.pdf.SetDrawColor(color.r, color.g, color.b)
	p.pdf.SetFillColor(color.r, color.g, color.b)
	p.pdf.SetLineWidth(0.6)

	var prevX, prevY float64
	for i, pt := range s.Points {
		px := x + step*float64(i)
		py := y + h - h*pt.Value.InexactFloat64()/top
		if i > 0 {
			p.pdf.Line(prevX, prevY, px, py)
		}
		p.pdf.Circle(px, py, 0.8, "F")
		prevX, prevY = px, py
	}

	p.pdf.SetFont(fontFamily, "", 7)
	first := report.FormatDate(s.Points[0].Date)
	last := report.FormatDate(s.Points[len(s.Points)-1].Date)
	p.pdf.Text(x, y+h+4, first)
	p.pdf.Text(x+w-p.pdf.GetStringWidth(last), y+h+4, last)

	p.axisLabels(x, y, w, h, s.XLabel, s.YLabel, report.FormatQuantity(peak))
	p.pdf.SetY(y + h + 12)
}

func (p *pdfWriter) barChart(r report.Ranking, color rgb) {
	if r.InsufficientData {
		p.pdf.Ln(lineHeight / 2)
		p.heading(r.Title)
		p.placeholder()
		return
	}

	x, y, w, h := p.chartFrame(r.Title)

	peak := r.Bars[0].Value
	for _, b := range r.Bars[1:] {
		if b.Value.GreaterThan(peak) {
			peak = b.Value
		}
	}
	top := peak.InexactFloat64()
	slot := w / float64(len(r.Bars))

	p.pdf.SetFillColor(color.r, color.g, color.b)
	p.pdf.SetFont(fontFamily, "", 7)
	for i, b := range r.Bars {
		barHeight := h * b.Value.InexactFloat64() / top
		if barHeight < 0 {
			barHeight = 0
		}
		bx := x + slot*float64(i) + slot*0.15
		p.pdf.Rect(bx, y+h-barHeight, slot*0.7, barHeight, "F")

		label := p.tr(b.Label)
		p.pdf.Text(bx+slot*0.35-p.pdf.GetStringWidth(label)/2, y+h+4, label)
	}

	p.axisLabels(x, y, w, h, r.XLabel, r.YLabel, report.FormatMoney(peak))
	p.pdf.SetY(y + h + 12)
}
