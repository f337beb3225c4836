package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/sangkips/restopos/pkg/pagination"
	"github.com/sangkips/restopos/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	saleRefPrefix   = "VTE"
	refundRefPrefix = "RMB"
	saleDateLayout  = "02/01/2006 15:04"
)

// SaleService records sales: cart settlement, back-office creation,
// status changes and refunds.
type SaleService struct {
	tx       repository.Transactor
	sales    repository.SaleRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	sessions repository.CashSessionRepository
	ledger   *CartLedger
	notifier Notifier
	store    StoreSettings
	log      *zap.Logger
	now      func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(
	tx repository.Transactor,
	sales repository.SaleRepository,
	products repository.ProductRepository,
	carts repository.CartRepository,
	sessions repository.CashSessionRepository,
	ledger *CartLedger,
	notifier Notifier,
	store StoreSettings,
	log *zap.Logger,
) *SaleService {
	return &SaleService{
		tx:       tx,
		sales:    sales,
		products: products,
		carts:    carts,
		sessions: sessions,
		ledger:   ledger,
		notifier: notifier,
		store:    store,
		log:      log,
		now:      time.Now,
	}
}

// SettleInput represents the checkout of a location's cart
type SettleInput struct {
	Location      string
	PaymentMethod enum.PaymentMethod
	// AmountTendered defaults to the total when nil.
	AmountTendered *decimal.Decimal
	CustomerName   string
}

// Settle turns a location's cart into a confirmed sale. The sale, the stock
// decrements and the emptied cart are committed together.
func (s *SaleService) Settle(ctx context.Context, input *SettleInput) (*entity.SaleOrder, error) {
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, ErrNoLocation
	}
	method := input.PaymentMethod
	if method == "" {
		method = enum.PaymentCash
	}
	if !method.Valid() {
		return nil, apperror.NewFieldError("payment_method", "unknown payment method")
	}
	if input.AmountTendered != nil && input.AmountTendered.IsNegative() {
		return nil, apperror.NewFieldError("amount_tendered", "must not be negative")
	}

	session, err := s.sessions.GetOpen(ctx, s.store.TerminalID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoOpenSession
	}

	var sale *entity.SaleOrder
	err = s.ledger.checkout(location, func(lines []entity.CartLine) error {
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		total := cartTotal(lines)
		if !total.IsPositive() {
			return ErrNonPositiveTotal
		}

		tendered := total
		if input.AmountTendered != nil {
			tendered = *input.AmountTendered
		}
		change := decimal.Max(decimal.Zero, tendered.Sub(total))

		items := make([]entity.SaleItem, len(lines))
		for i, line := range lines {
			items[i] = entity.SaleItem{
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Quantity:    line.Quantity,
				UnitPrice:   line.Price,
			}
		}

		sale = s.newSale(enum.SaleStatusConfirmed, items)
		sale.CustomerName = input.CustomerName
		sale.Location = location
		sale.PaymentMethod = method
		sale.AmountReceived = tendered
		sale.Change = change
		sale.SessionID = &session.ID
		sale.CashierName = session.CashierName
		sale.PreparationStatus = enum.PreparationPending

		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.sales.Create(ctx, sale); err != nil {
				return fmt.Errorf("create sale: %w", err)
			}
			if err := s.products.AdjustStock(ctx, stockDeltas(items, -1)); err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			return s.carts.Replace(ctx, location, nil)
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale settled",
		zap.String("reference", sale.Reference),
		zap.String("location", location),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.String("change", sale.Change.StringFixed(2)))
	s.notifier.Notify(ctx, "Vente enregistrée",
		fmt.Sprintf("%s: %s %s, rendu %s", location, sale.Total.StringFixed(2), s.store.Currency, sale.Change.StringFixed(2)),
		enum.SeveritySuccess)
	s.warnNegativeStock(ctx, sale.Items)

	return sale, nil
}

// SaleItemInput represents an item of a back-office sale
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	// UnitPrice defaults to the product's current price.
	UnitPrice *decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerName   string
	Status         enum.SaleStatus
	PaymentMethod  enum.PaymentMethod
	Location       string
	AmountReceived *decimal.Decimal
	CashierName    string
	Items          []SaleItemInput
}

// CreateSale records a sale outside the cart flow. Stock moves by the
// status: confirmed and delivered consume, refunded restores, drafts and
// quotations leave it alone.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.SaleOrder, error) {
	if input.Status == "" {
		input.Status = enum.SaleStatusDraft
	}
	if !input.Status.Valid() {
		return nil, apperror.NewFieldError("status", "unknown status")
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.Valid() {
		return nil, apperror.NewFieldError("payment_method", "unknown payment method")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}

	// Batch fetch all products in one query
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].unit_price", i), "must not be negative")
		}
		productIDs[i] = item.ProductID
	}
	products, err := s.products.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	items := make([]entity.SaleItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := productMap[item.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		price := product.Price
		if item.UnitPrice != nil {
			price = item.UnitPrice.Round(2)
		}
		items = append(items, entity.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   price,
		})
	}

	session, err := s.sessions.GetOpen(ctx, s.store.TerminalID)
	if err != nil {
		return nil, err
	}

	sale := s.newSale(input.Status, items)
	sale.CustomerName = input.CustomerName
	sale.Location = strings.TrimSpace(input.Location)
	sale.PaymentMethod = input.PaymentMethod
	sale.CashierName = input.CashierName
	sale.AmountReceived = sale.Total
	if input.AmountReceived != nil {
		sale.AmountReceived = *input.AmountReceived
		sale.Change = decimal.Max(decimal.Zero, sale.AmountReceived.Sub(sale.Total))
	}
	if session != nil {
		sale.SessionID = &session.ID
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.sales.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		if sign := input.Status.StockSign(); sign != 0 {
			return s.products.AdjustStock(ctx, stockDeltas(items, sign))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale created", zap.String("reference", sale.Reference), zap.String("status", string(sale.Status)))
	if input.Status.StockSign() < 0 {
		s.warnNegativeStock(ctx, sale.Items)
	}
	return sale, nil
}

// Refund records a refund of a confirmed or delivered sale as a new sale
// with status refunded. Stock comes back and the refund counts negative in
// revenue and in the drawer. The original keeps its status.
func (s *SaleService) Refund(ctx context.Context, saleID uuid.UUID) (*entity.SaleOrder, error) {
	original, err := s.getSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if original.IsRefunded() {
		return nil, ErrAlreadyRefunded
	}
	if original.RefundOfID != nil || !original.Status.CanTransitionTo(enum.SaleStatusRefunded) {
		return nil, ErrInvalidTransition
	}

	session, err := s.sessions.GetOpen(ctx, s.store.TerminalID)
	if err != nil {
		return nil, err
	}

	items := make([]entity.SaleItem, len(original.Items))
	for i, it := range original.Items {
		items[i] = entity.SaleItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	refund := s.newSale(enum.SaleStatusRefunded, items)
	refund.Reference = utils.GenerateReference(refundRefPrefix, s.now().In(s.store.loc()))
	refund.CustomerName = original.CustomerName
	refund.Location = original.Location
	refund.PaymentMethod = original.PaymentMethod
	refund.AmountReceived = decimal.Zero
	refund.RefundOfID = &original.ID
	if session != nil {
		refund.SessionID = &session.ID
		refund.CashierName = session.CashierName
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.sales.Create(ctx, refund); err != nil {
			return fmt.Errorf("create refund: %w", err)
		}
		if err := s.sales.MarkRefunded(ctx, original.ID, refund.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlreadyRefunded
			}
			return err
		}
		return s.products.AdjustStock(ctx, stockDeltas(items, enum.SaleStatusRefunded.StockSign()))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale refunded", zap.String("reference", original.Reference), zap.String("refund", refund.Reference))
	s.notifier.Notify(ctx, "Remboursement",
		fmt.Sprintf("%s remboursée: %s %s", original.Reference, refund.Total.StringFixed(2), s.store.Currency),
		enum.SeverityInfo)
	return refund, nil
}

// UpdateStatus moves a sale along its lifecycle. Confirming a draft or a
// quotation consumes stock; a move to refunded is recorded through Refund.
func (s *SaleService) UpdateStatus(ctx context.Context, saleID uuid.UUID, next enum.SaleStatus) (*entity.SaleOrder, error) {
	if !next.Valid() {
		return nil, apperror.NewFieldError("status", "unknown status")
	}
	sale, err := s.getSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if next == enum.SaleStatusRefunded {
		if _, err := s.Refund(ctx, saleID); err != nil {
			return nil, err
		}
		return s.getSale(ctx, saleID)
	}
	if !sale.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	delta := consumes(sale.Status) - consumes(next)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.sales.UpdateStatus(ctx, sale.ID, next); err != nil {
			return err
		}
		if delta != 0 {
			return s.products.AdjustStock(ctx, stockDeltas(sale.Items, delta))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale status changed",
		zap.String("reference", sale.Reference),
		zap.String("from", string(sale.Status)),
		zap.String("to", string(next)))
	if delta < 0 {
		s.warnNegativeStock(ctx, sale.Items)
	}
	sale.Status = next
	return sale, nil
}

// UpdatePreparation sets the kitchen display state of a sale.
func (s *SaleService) UpdatePreparation(ctx context.Context, saleID uuid.UUID, status enum.PreparationStatus) (*entity.SaleOrder, error) {
	if !status.Valid() {
		return nil, apperror.NewFieldError("preparation_status", "unknown preparation status")
	}
	sale, err := s.getSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := s.sales.UpdatePreparation(ctx, saleID, status); err != nil {
		return nil, err
	}
	sale.PreparationStatus = status
	return sale, nil
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.SaleOrder, error) {
	return s.getSale(ctx, id)
}

// ListSales retrieves sales, newest first
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.Page[entity.SaleOrder], error) {
	params.Pagination = params.Pagination.Normalize()
	sales, total, err := s.sales.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(sales, params.Pagination, total), nil
}

// Receipt composes the printable view of a sale.
func (s *SaleService) Receipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.getSale(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ReceiptItem, len(sale.Items))
	for i, it := range sale.Items {
		items[i] = entity.ReceiptItem{
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Subtotal(),
		}
	}
	return &entity.Receipt{
		Header:        s.store.receiptHeader(),
		Reference:     sale.Reference,
		Date:          sale.Date,
		Cashier:       sale.CashierName,
		Customer:      sale.CustomerName,
		Location:      sale.Location,
		PaymentMethod: string(sale.PaymentMethod),
		Status:        string(sale.Status),
		Items:         items,
		Total:         sale.Total,
		Received:      sale.AmountReceived,
		Change:        sale.Change,
	}, nil
}

func (s *SaleService) getSale(ctx context.Context, id uuid.UUID) (*entity.SaleOrder, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

func (s *SaleService) newSale(status enum.SaleStatus, items []entity.SaleItem) *entity.SaleOrder {
	now := s.now().In(s.store.loc())
	sale := &entity.SaleOrder{
		Reference:   utils.GenerateReference(saleRefPrefix, now),
		Date:        now.Format(saleDateLayout),
		OrderedAt:   now,
		BusinessDay: s.store.BusinessDay(now),
		Status:      status,
		Items:       items,
	}
	sale.Total = sale.ItemsTotal()
	return sale
}

// warnNegativeStock reports products whose stock went below zero. The sale
// stands; the operator is told to recount.
func (s *SaleService) warnNegativeStock(ctx context.Context, items []entity.SaleItem) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		s.log.Error("failed to check stock levels", zap.Error(err))
		return
	}
	for _, p := range products {
		if p.Stock >= 0 {
			continue
		}
		s.log.Warn("stock below zero",
			zap.String("product_id", p.ID.String()),
			zap.String("product", p.Name),
			zap.Int("stock_after", p.Stock))
		s.notifier.Notify(ctx, "Stock négatif",
			fmt.Sprintf("%s: stock %d, vérifiez l'inventaire", p.Name, p.Stock),
			enum.SeverityWarning)
	}
}

// consumes is 1 when a sale in status holds its items out of stock.
func consumes(status enum.SaleStatus) int {
	if status.StockSign() < 0 {
		return 1
	}
	return 0
}

// stockDeltas sums quantity × sign per product.
func stockDeltas(items []entity.SaleItem, sign int) map[uuid.UUID]int {
	deltas := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		deltas[it.ProductID] += it.Quantity * sign
	}
	return deltas
}
