package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/minsu/procure-budget/internal/format"
	"github.com/minsu/procure-budget/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the printable purchase-order sheet.
func (g *Generator) Generate(doc model.PODocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "PURCHASE ORDER", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("PO No. %s, issued %s", doc.PO.PONumber, format.Date(doc.PO.CreatedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Project", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	infoRows := [][2]string{
		{"Project number", doc.Project.ProjectNumber},
		{"Manager", doc.Project.Manager},
		{"Announcement", doc.Project.AnnouncementNumber},
		{"Contract window", fmt.Sprintf("%s - %s", format.Date(doc.Project.StartDate), format.Date(doc.Project.EndDate))},
		{"Available budget", format.Number(doc.Budget.AvailableBudget) + " KRW"},
	}
	for _, row := range infoRows {
		pdf.CellFormat(45, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Payment", "", 1, "L", false, 0, "")

	headers := []string{"Item", "Amount (KRW)"}
	colWidths := []float64{90, 84}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	rows := [][2]string{
		{"Requested amount (gross)", format.Number(doc.PO.Amount)},
		{"Supply amount", format.Number(doc.PO.SupplyAmount)},
	}
	switch doc.PO.InvoiceType {
	case model.InvoiceTaxInvoice:
		rows = append(rows, [2]string{"VAT", format.Number(doc.PO.TaxAmount)})
	case model.InvoiceTaxExempt:
		// no tax and no withholding
	default:
		rows = append(rows, [2]string{"Withholding", format.Number(doc.PO.DeductionAmount)})
	}
	for _, row := range rows {
		drawTableRow(pdf, g.fontName, row[:], colWidths, false)
	}

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice type: %s", invoiceLabel(doc.PO.InvoiceType)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Payment type: %s", paymentLabel(doc.PO.PaymentType)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", doc.PO.Status), "", 1, "L", false, 0, "")

	pdf.Ln(10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Approved by: ______________________ /%s/", doc.Project.Manager), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func invoiceLabel(t model.InvoiceType) string {
	switch t {
	case model.InvoiceTaxInvoice:
		return "Tax invoice (VAT 10%)"
	case model.InvoiceBusinessIncome:
		return "Business income (3.3%)"
	case model.InvoiceOtherIncome:
		return "Other income (8.8%)"
	case model.InvoiceTaxExempt:
		return "Tax exempt (0%)"
	default:
		return string(t)
	}
}

func paymentLabel(t model.PaymentType) string {
	if t == model.PaymentBalance {
		return "Balance (30%)"
	}
	return "Advance (70%)"
}
