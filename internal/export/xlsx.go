package export

import (
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"crediario/internal/format"
)

const (
	sheetSummary   = "Resumo"
	sheetCustomers = "Clientes"
	sheetExpenses  = "Despesas"
)

// WriteXLSX writes a workbook with summary, customer and expense sheets.
func WriteXLSX(w io.Writer, snap Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	for _, name := range []string{sheetCustomers, sheetExpenses} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summary := [][]any{
		{snap.BusinessName, "Exportado em " + snap.ExportedAt.Format("02/01/2006 15:04")},
		{},
		{"Resumo geral"},
		{"Entradas", amount(snap.Summary.TotalInflows)},
		{"Saídas", amount(snap.Summary.TotalOutflows)},
		{"Despesas", amount(snap.Summary.TotalExpenses)},
		{"Lucro líquido", amount(snap.Summary.NetProfit)},
		{"Crédito em aberto", amount(snap.Summary.OutstandingCredit)},
		{"Clientes ativos", snap.Summary.ActiveCustomers},
		{"Clientes em atraso", snap.Summary.OverdueCustomers},
		{},
		{"Mês de " + snap.Monthly.MonthName + " de " + strconv.Itoa(snap.Monthly.Year)},
		{"Recebido no mês", amount(snap.Monthly.TotalReceived)},
		{"Despesas do mês", amount(snap.Monthly.TotalExpenses)},
		{"Lucro do mês", amount(snap.Monthly.FinalProfit)},
		{"Clientes que pagaram", snap.Monthly.PayingCustomers},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return err
	}
	for _, cell := range []string{"A1", "A3", "A12"} {
		if err := f.SetCellStyle(sheetSummary, cell, cell, bold); err != nil {
			return err
		}
	}
	for _, r := range [][2]string{{"B4", "B8"}, {"B13", "B15"}} {
		if err := f.SetCellStyle(sheetSummary, r[0], r[1], money); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 28); err != nil {
		return err
	}

	customers := [][]any{{"Nome", "Telefone", "CPF", "Vencimento", "Principal", "Juros", "Total devido", "Em atraso"}}
	for _, c := range snap.ActiveCustomers {
		late := "não"
		if c.Overdue {
			late = "sim"
		}
		customers = append(customers, []any{
			c.Name, format.Phone(c.Phone), format.CPF(c.TaxID), format.Date(c.DueDate),
			amount(c.DebtAmount), amount(c.Interest), amount(c.TotalOwed), late,
		})
	}
	if err := writeTable(f, sheetCustomers, customers, bold, money, "E", "G"); err != nil {
		return err
	}

	expenses := [][]any{{"Data", "Descrição", "Categoria", "Valor", "Recorrente", "Observação"}}
	for _, e := range snap.Expenses {
		recurring := "não"
		if e.Recurring {
			recurring = "sim"
		}
		expenses = append(expenses, []any{
			format.Date(e.Date), e.Name, format.CategoryLabel(e.Category), amount(e.Amount), recurring, e.Note,
		})
	}
	if err := writeTable(f, sheetExpenses, expenses, bold, money, "D", "D"); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// writeTable writes a header row plus data and formats the money columns.
func writeTable(f *excelize.File, sheet string, rows [][]any, header, money int, moneyFrom, moneyTo string) error {
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return err
	}
	if len(rows) > 1 {
		end := moneyTo + strconv.Itoa(len(rows))
		if err := f.SetCellStyle(sheet, moneyFrom+"2", end, money); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "B", 24)
}

func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
