package service

import (
	"context"
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
)

// PurchaseService records supplier deliveries into stock.
type PurchaseService struct {
	tx           repository.Transactor
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	expenseRepo  repository.ExpenseRepository
	store        StoreSettings
	log          *zap.Logger
	now          func() time.Time
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	tx repository.Transactor,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	expenseRepo repository.ExpenseRepository,
	store StoreSettings,
	log *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		tx:           tx,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		expenseRepo:  expenseRepo,
		store:        store,
		log:          log,
		now:          time.Now,
	}
}

// PurchaseItemInput represents an item in a purchase
type PurchaseItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitCost  decimal.Decimal
}

// ReceiveInput represents a received delivery
type ReceiveInput struct {
	Supplier string
	// Date defaults to today; YYYY-MM-DD or DD/MM/YYYY.
	Date  string
	Notes string
	Items []PurchaseItemInput
	// RecordExpense also books the total as a Fournitures expense.
	RecordExpense bool
	PaymentMethod enum.PaymentMethod
}

// Receive stores a purchase and adds its quantities to stock in one
// transaction. Each product's cost becomes the latest unit cost.
func (s *PurchaseService) Receive(ctx context.Context, input *ReceiveInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}
	date := s.store.BusinessDay(s.now())
	if input.Date != "" {
		iso, err := utils.NormalizeISODate(input.Date)
		if err != nil {
			return nil, apperror.NewFieldError("date", "expected YYYY-MM-DD or DD/MM/YYYY")
		}
		date = iso
	}
	method := input.PaymentMethod
	if method == "" {
		method = enum.PaymentCash
	}
	if !method.Valid() {
		return nil, apperror.NewFieldError("payment_method", "unknown payment method")
	}

	// Batch fetch all products in one query
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
		if item.UnitCost.IsNegative() {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].unit_cost", i), "must not be negative")
		}
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	total := decimal.Zero
	details := make([]entity.PurchaseDetail, 0, len(input.Items))
	increments := make(map[uuid.UUID]int, len(input.Items))
	for _, item := range input.Items {
		product, ok := productMap[item.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		unitCost := item.UnitCost.Round(2)
		lineTotal := unitCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		increments[product.ID] += item.Quantity
		details = append(details, entity.PurchaseDetail{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitCost:    unitCost,
			Total:       lineTotal,
		})
	}

	purchase := &entity.Purchase{
		Reference:   utils.GenerateReference("ACH", s.now().In(s.store.loc())),
		Supplier:    strings.TrimSpace(input.Supplier),
		Date:        date,
		TotalAmount: total,
		Notes:       input.Notes,
		Details:     details,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		if err := s.productRepo.AdjustStock(ctx, increments); err != nil {
			return fmt.Errorf("increment stock: %w", err)
		}
		for _, d := range details {
			if err := s.productRepo.SetCost(ctx, d.ProductID, d.UnitCost); err != nil {
				return err
			}
		}
		if !input.RecordExpense {
			return nil
		}
		return s.expenseRepo.Create(ctx, &entity.Expense{
			Description:   "Achat " + purchase.Reference + supplierSuffix(purchase.Supplier),
			Amount:        total,
			Date:          date,
			Category:      enum.ExpenseSupplies,
			PaymentMethod: method,
			Status:        "paid",
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("purchase received",
		zap.String("reference", purchase.Reference),
		zap.Int("lines", len(details)),
		zap.String("total", total.StringFixed(2)))
	return purchase, nil
}

// GetPurchase retrieves a purchase with its details
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases, newest first
func (s *PurchaseService) ListPurchases(ctx context.Context, params pagination.Params) (*pagination.Page[entity.Purchase], error) {
	params = params.Normalize()
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(purchases, params, total), nil
}

func supplierSuffix(supplier string) string {
	if supplier == "" {
		return ""
	}
	return " - " + supplier
}
