// Package document renders printable A4 documents (invoices, payslips) as PDF.
package document

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Header is printed at the top of every document.
type Header struct {
	BusinessName string
	Currency     string
}

// InvoiceLine is one sold product.
type InvoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Invoice is a finalized sale ready for printing.
type Invoice struct {
	Reference     string
	Date          string
	Customer      string
	Location      string
	Status        string
	PaymentMethod string
	Lines         []InvoiceLine
	Total         decimal.Decimal
	Received      decimal.Decimal
	Change        decimal.Decimal
}

// Payslip is one employee's computed pay for a month.
type Payslip struct {
	EmployeeName     string
	Role             string
	Department       string
	Period           string
	BaseSalary       decimal.Decimal
	DaysWorked       int
	AbsenceDays      int
	AbsenceDeduction decimal.Decimal
	LateMinutes      int
	LateDeduction    decimal.Decimal
	NetSalary        decimal.Decimal
	Paid             bool
}

type writer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	h   Header
}

func newWriter(h Header, title string) *writer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), h: h}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, w.tr(h.BusinessName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, w.tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	return w
}

func (w *writer) money(d decimal.Decimal) string {
	if w.h.Currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + w.h.Currency
}

func (w *writer) field(label, value string) {
	w.pdf.SetFont("Arial", "B", 11)
	w.pdf.CellFormat(50, 7, w.tr(label), "", 0, "L", false, 0, "")
	w.pdf.SetFont("Arial", "", 11)
	w.pdf.CellFormat(0, 7, w.tr(value), "", 1, "L", false, 0, "")
}

func (w *writer) row(cells []string, widths []float64, aligns string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	w.pdf.SetFont("Arial", style, 11)
	for i, c := range cells {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		w.pdf.CellFormat(widths[i], 8, w.tr(c), "1", ln, string(aligns[i]), false, 0, "")
	}
}

func (w *writer) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderInvoice produces the PDF of a sale.
func RenderInvoice(h Header, inv Invoice) ([]byte, error) {
	w := newWriter(h, "Facture "+inv.Reference)

	w.field("Date", inv.Date)
	if inv.Customer != "" {
		w.field("Client", inv.Customer)
	}
	if inv.Location != "" {
		w.field("Emplacement", inv.Location)
	}
	w.field("Statut", inv.Status)
	w.pdf.Ln(4)

	widths := []float64{85, 25, 40, 40}
	w.row([]string{"Produit", "Qté", "Prix unitaire", "Sous-total"}, widths, "LCRR", true)
	for _, l := range inv.Lines {
		sub := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		w.row([]string{l.Name, fmt.Sprintf("%d", l.Quantity), w.money(l.UnitPrice), w.money(sub)}, widths, "LCRR", false)
	}
	w.row([]string{"Total", "", "", w.money(inv.Total)}, widths, "LCRR", true)
	w.pdf.Ln(4)

	w.field("Paiement", inv.PaymentMethod)
	w.field("Montant reçu", w.money(inv.Received))
	w.field("Rendu", w.money(inv.Change))
	return w.bytes()
}

// RenderPayslip produces the PDF of a monthly payslip.
func RenderPayslip(h Header, p Payslip) ([]byte, error) {
	w := newWriter(h, "Bulletin de paie - "+p.Period)

	w.field("Employé", p.EmployeeName)
	w.field("Poste", p.Role)
	w.field("Département", p.Department)
	w.pdf.Ln(4)

	widths := []float64{110, 80}
	w.row([]string{"Rubrique", "Montant"}, widths, "LR", true)
	w.row([]string{"Salaire de base", w.money(p.BaseSalary)}, widths, "LR", false)
	w.row([]string{fmt.Sprintf("Absences (%d jours, %d travaillés)", p.AbsenceDays, p.DaysWorked), "-" + w.money(p.AbsenceDeduction)}, widths, "LR", false)
	w.row([]string{fmt.Sprintf("Retards (%d min)", p.LateMinutes), "-" + w.money(p.LateDeduction)}, widths, "LR", false)
	w.row([]string{"Net à payer", w.money(p.NetSalary)}, widths, "LR", true)
	w.pdf.Ln(4)

	status := "En attente"
	if p.Paid {
		status = "Payé"
	}
	w.field("Statut", status)
	return w.bytes()
}
