package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer  printer.Printer
	sales    *SaleService
	sessions *SessionService
	store    StoreSettings
	log      *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	sales *SaleService,
	sessions *SessionService,
	store StoreSettings,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:  p,
		sales:    sales,
		sessions: sessions,
		store:    store,
		log:      log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Type  string `json:"type"`
	Ready bool   `json:"ready"`
}

// GetStatus returns printer readiness.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{Type: s.printer.Kind(), Ready: s.printer.Ready()}
}

// PrintSaleReceipt prints the receipt of a sale. The receipt is returned
// even when printing fails so the UI can show it.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.sales.Receipt(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.store.PrinterWidth)); err != nil {
		s.log.Error("printer error", zap.String("sale_id", saleID.String()), zap.Error(err))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// PrintZTicket prints the closing report of a closed session.
func (s *PrinterService) PrintZTicket(ctx context.Context, sessionID uuid.UUID) (*ClosingReport, error) {
	report, err := s.sessions.Report(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, FormatZTicket(s.store, report)); err != nil {
		s.log.Error("printer error", zap.String("session_id", sessionID.String()), zap.Error(err))
		return report, fmt.Errorf("failed to print Z ticket: %w", err)
	}
	return report, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.Title(r.Header.StoreName)
	if r.Header.Terminal != "" {
		doc.Centered(r.Header.Terminal)
	}
	doc.Align(printer.AlignLeft).Separator('-')

	doc.Columns("Ticket:", r.Reference).
		Columns("Date:", r.Date)
	if r.Location != "" {
		doc.Columns("Table:", r.Location)
	}
	if r.Cashier != "" {
		doc.Columns("Caissier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.Columns("Client:", r.Customer)
	}
	if r.Status == "refunded" {
		doc.Bold(true).Centered("REMBOURSEMENT").Bold(false)
	}
	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.Item(item.Quantity, item.Name, money(item.Total))
		if item.Quantity > 1 {
			doc.Linef("  @ %s", money(item.UnitPrice))
		}
	}
	doc.Separator('-')

	// Totals
	doc.Bold(true).
		Columns("TOTAL "+r.Header.Currency, money(r.Total)).
		Bold(false)
	if r.PaymentMethod != "" {
		doc.Columns("Paiement:", r.PaymentMethod)
	}
	if r.Received.IsPositive() {
		doc.Columns("Reçu:", money(r.Received))
		doc.Columns("Rendu:", money(r.Change))
	}
	doc.Separator('-')

	// Footer
	doc.Centered("Merci de votre visite !").
		Feed(3).
		PartialCut()

	return doc.Bytes()
}

// FormatZTicket converts a closing report into ESC/POS bytes.
func FormatZTicket(store StoreSettings, r *ClosingReport) []byte {
	doc := printer.NewDocument(store.PrinterWidth)
	loc := store.loc()

	doc.Title("TICKET Z").
		Centered(store.BusinessName).
		Align(printer.AlignLeft).
		Separator('=')

	doc.Columns("Caisse:", r.Session.TerminalID).
		Columns("Caissier:", r.Session.CashierName).
		Columns("Ouverture:", r.Session.OpenedAt.In(loc).Format(saleDateLayout))
	if r.Session.ClosedAt != nil {
		doc.Columns("Clôture:", r.Session.ClosedAt.In(loc).Format(saleDateLayout))
	}
	doc.Separator('-')

	doc.Columns("Ventes:", fmt.Sprintf("%d", r.SalesCount)).
		Columns("Remboursements:", fmt.Sprintf("%d", r.RefundCount))

	methods := make([]string, 0, len(r.TotalsByPayment))
	for m := range r.TotalsByPayment {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, m := range methods {
		doc.Columns("  "+m, money(r.TotalsByPayment[m]))
	}
	doc.Separator('-')

	doc.Columns("Fond de caisse:", money(r.OpeningBalance)).
		Columns("Attendu:", money(r.ExpectedBalance)).
		Columns("Compté:", money(r.CountedBalance)).
		Bold(true).
		Columns("Écart:", money(r.Discrepancy)).
		Bold(false)

	if len(r.CountLines) > 0 {
		doc.Separator('-')
		for _, line := range r.CountLines {
			if line.Count == 0 {
				continue
			}
			doc.Columns(fmt.Sprintf("%d x %d", line.Count, line.Denomination), money(line.Subtotal))
		}
	}
	if r.Session.Notes != "" {
		doc.Separator('-').Line(r.Session.Notes)
	}

	doc.Feed(3).Cut()
	return doc.Bytes()
}
