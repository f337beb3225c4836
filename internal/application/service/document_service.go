package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/document"
	"github.com/sangkips/restopos/pkg/export"
	"github.com/sangkips/restopos/pkg/utils"
)

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DocumentService renders invoices, payslips and spreadsheets. It only
// reads.
type DocumentService struct {
	sales      *SaleService
	payroll    *PayrollService
	attendance *AttendanceService
	reports    *ReportService
	saleRepo   repository.SaleRepository
	store      StoreSettings
}

// NewDocumentService creates a new document service
func NewDocumentService(
	sales *SaleService,
	payroll *PayrollService,
	attendance *AttendanceService,
	reports *ReportService,
	saleRepo repository.SaleRepository,
	store StoreSettings,
) *DocumentService {
	return &DocumentService{
		sales:      sales,
		payroll:    payroll,
		attendance: attendance,
		reports:    reports,
		saleRepo:   saleRepo,
		store:      store,
	}
}

func (s *DocumentService) header() document.Header {
	return document.Header{BusinessName: s.store.BusinessName, Currency: s.store.Currency}
}

// Invoice renders a sale as an A4 PDF.
func (s *DocumentService) Invoice(ctx context.Context, saleID uuid.UUID) (*File, error) {
	sale, err := s.sales.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	lines := make([]document.InvoiceLine, len(sale.Items))
	for i, it := range sale.Items {
		lines[i] = document.InvoiceLine{Name: it.ProductName, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	data, err := document.RenderInvoice(s.header(), document.Invoice{
		Reference:     sale.Reference,
		Date:          sale.Date,
		Customer:      sale.CustomerName,
		Location:      sale.Location,
		Status:        string(sale.Status),
		PaymentMethod: string(sale.PaymentMethod),
		Lines:         lines,
		Total:         sale.Total,
		Received:      sale.AmountReceived,
		Change:        sale.Change,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}
	return &File{Name: sale.Reference + ".pdf", ContentType: contentTypePDF, Data: data}, nil
}

// Payslip renders an employee's pay for a month as an A4 PDF.
func (s *DocumentService) Payslip(ctx context.Context, employeeID uuid.UUID, month, year int) (*File, error) {
	emp, err := s.attendance.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	result, err := s.payroll.Compute(ctx, employeeID, month, year)
	if err != nil {
		return nil, err
	}

	data, err := document.RenderPayslip(s.header(), document.Payslip{
		EmployeeName:     emp.Name,
		Role:             emp.Role,
		Department:       emp.Department,
		Period:           utils.MonthLabelFR(month, year),
		BaseSalary:       result.BaseSalary,
		DaysWorked:       result.DaysWorked,
		AbsenceDays:      result.AbsenceDays,
		AbsenceDeduction: result.AbsenceDeduction,
		LateMinutes:      result.LateMinutes,
		LateDeduction:    result.LateDeduction,
		NetSalary:        result.NetSalary,
		Paid:             result.IsPaid,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}
	name := fmt.Sprintf("bulletin-%s-%s.pdf", result.PeriodKey, emp.ID.String()[:8])
	return &File{Name: name, ContentType: contentTypePDF, Data: data}, nil
}

// PayrollSheet exports the payroll of every employee for a month.
func (s *DocumentService) PayrollSheet(ctx context.Context, month, year int) (*File, error) {
	results, err := s.payroll.ComputeAll(ctx, month, year)
	if err != nil {
		return nil, err
	}

	sheet := export.Sheet{
		Name: "Paie " + utils.PeriodKey(month, year),
		Headers: []string{
			"Employé", "Salaire de base", "Jours travaillés", "Absences", "Retenue absences",
			"Retard (min)", "Retenue retards", "Net à payer", "Payé",
		},
		Widths: []float64{28, 16, 16, 12, 18, 14, 18, 16, 8},
	}
	for _, r := range results {
		paid := "non"
		if r.IsPaid {
			paid = "oui"
		}
		sheet.AddRow(r.EmployeeName, r.BaseSalary, r.DaysWorked, r.AbsenceDays, r.AbsenceDeduction,
			r.LateMinutes, r.LateDeduction, r.NetSalary, paid)
	}

	data, err := export.Workbook(sheet)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}
	return &File{Name: "paie-" + utils.PeriodKey(month, year) + ".xlsx", ContentType: contentTypeXLSX, Data: data}, nil
}

// SalesSheet exports the sales journal of a period with a summary sheet.
func (s *DocumentService) SalesSheet(ctx context.Context, start, end string) (*File, error) {
	summary, err := s.reports.Summary(ctx, start, end)
	if err != nil {
		return nil, err
	}
	sales, _, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		StartDay: summary.StartDate,
		EndDay:   summary.EndDate,
		All:      true,
	})
	if err != nil {
		return nil, err
	}

	journal := export.Sheet{
		Name:    "Ventes",
		Headers: []string{"Référence", "Date", "Table", "Statut", "Paiement", "Articles", "Total"},
		Widths:  []float64{26, 18, 14, 12, 12, 10, 14},
	}
	for i := range sales {
		sale := &sales[i]
		journal.AddRow(sale.Reference, sale.Date, sale.Location, string(sale.Status),
			string(sale.PaymentMethod), itemCount(sale), sale.Total)
	}

	totals := export.Sheet{
		Name:    "Synthèse",
		Headers: []string{"Indicateur", "Valeur"},
		Widths:  []float64{24, 16},
	}
	totals.AddRow("Période", summary.StartDate+" au "+summary.EndDate)
	totals.AddRow("Chiffre d'affaires", summary.TotalRevenue)
	totals.AddRow("Dépenses", summary.TotalCosts)
	totals.AddRow("Résultat net", summary.NetResult)
	totals.AddRow("Nombre de ventes", summary.SalesCount)

	top := export.Sheet{
		Name:    "Top produits",
		Headers: []string{"Produit", "Quantité", "Chiffre d'affaires"},
		Widths:  []float64{28, 12, 18},
	}
	for _, p := range summary.TopProducts {
		top.AddRow(p.ProductName, p.QuantitySold, p.Revenue)
	}

	data, err := export.Workbook(journal, totals, top)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternalServer, err)
	}
	name := fmt.Sprintf("ventes-%s-%s.xlsx", summary.StartDate, summary.EndDate)
	return &File{Name: name, ContentType: contentTypeXLSX, Data: data}, nil
}

func itemCount(sale *entity.SaleOrder) int {
	n := 0
	for _, it := range sale.Items {
		n += it.Quantity
	}
	return n
}
