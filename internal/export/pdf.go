package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"crediario/internal/format"
)

const (
	pdfMargin = 12.0
	rowHeight = 6.0
)

// WritePDF renders the snapshot as an A4 report.
func WritePDF(w io.Writer, snap Snapshot) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(snap.BusinessName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	title := fmt.Sprintf("Relatório de %s de %d", snap.Monthly.MonthName, snap.Monthly.Year)
	pdf.CellFormat(contentW, 6, tr(title), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, tr("Gerado em "+snap.ExportedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, tr, contentW, "Resumo geral")
	keyValues(pdf, tr, contentW, [][2]string{
		{"Entradas", format.Currency(snap.Summary.TotalInflows)},
		{"Saídas", format.Currency(snap.Summary.TotalOutflows)},
		{"Despesas", format.Currency(snap.Summary.TotalExpenses)},
		{"Lucro líquido", format.Currency(snap.Summary.NetProfit)},
		{"Crédito em aberto", format.Currency(snap.Summary.OutstandingCredit)},
		{"Clientes ativos", strconv.Itoa(snap.Summary.ActiveCustomers)},
		{"Clientes em atraso", strconv.Itoa(snap.Summary.OverdueCustomers)},
		{"Taxa de recebimento", snap.Summary.CollectionRate().StringFixed(2) + "%"},
	})

	section(pdf, tr, contentW, "Mês de "+snap.Monthly.MonthName)
	keyValues(pdf, tr, contentW, [][2]string{
		{"Recebido no mês", format.Currency(snap.Monthly.TotalReceived)},
		{"Despesas do mês", format.Currency(snap.Monthly.TotalExpenses)},
		{"Lucro do mês", format.Currency(snap.Monthly.FinalProfit)},
		{"Clientes que pagaram", strconv.Itoa(snap.Monthly.PayingCustomers)},
	})

	section(pdf, tr, contentW, "Clientes ativos")
	cols := []float64{contentW * 0.34, contentW * 0.2, contentW * 0.16, contentW * 0.3}
	tableHeader(pdf, tr, cols, []string{"Nome", "Telefone", "Vencimento", "Total devido"})
	pdf.SetFont("Helvetica", "", 9)
	for _, c := range snap.ActiveCustomers {
		due := format.Date(c.DueDate)
		if c.Overdue {
			due += " *"
		}
		tableRow(pdf, tr, cols, []string{c.Name, format.Phone(c.Phone), due, format.Currency(c.TotalOwed)})
	}
	if len(snap.ActiveCustomers) > 0 {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentW, 5, tr("* vencido"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	section(pdf, tr, contentW, "Despesas")
	cols = []float64{contentW * 0.16, contentW * 0.4, contentW * 0.2, contentW * 0.24}
	tableHeader(pdf, tr, cols, []string{"Data", "Descrição", "Categoria", "Valor"})
	pdf.SetFont("Helvetica", "", 9)
	for _, e := range snap.Expenses {
		tableRow(pdf, tr, cols, []string{format.Date(e.Date), e.Name, format.CategoryLabel(e.Category), format.Currency(e.Amount)})
	}

	return pdf.Output(w)
}

func section(pdf *fpdf.Fpdf, tr func(string) string, width float64, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(width, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func keyValues(pdf *fpdf.Fpdf, tr func(string) string, width float64, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(width*0.6, rowHeight, tr(r[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(width*0.4, rowHeight, tr(r[1]), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func tableHeader(pdf *fpdf.Fpdf, tr func(string) string, cols []float64, titles []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, t := range titles {
		pdf.CellFormat(cols[i], rowHeight, tr(t), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func tableRow(pdf *fpdf.Fpdf, tr func(string) string, cols []float64, cells []string) {
	for i, c := range cells {
		align := "L"
		if i == len(cells)-1 {
			align = "R"
		}
		pdf.CellFormat(cols[i], rowHeight, tr(c), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
