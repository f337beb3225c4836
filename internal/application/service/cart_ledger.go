package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartLedger holds the in-progress order of every location (table or
// takeaway slot). Every change is written through to the cart repository
// before it is applied in memory, so carts survive a restart.
type CartLedger struct {
	mu       sync.Mutex
	carts    map[string][]entity.CartLine
	tx       repository.Transactor
	repo     repository.CartRepository
	products repository.ProductRepository
	notifier Notifier
	log      *zap.Logger
}

// NewCartLedger creates an empty ledger; call Load to restore saved carts.
func NewCartLedger(
	tx repository.Transactor,
	repo repository.CartRepository,
	products repository.ProductRepository,
	notifier Notifier,
	log *zap.Logger,
) *CartLedger {
	return &CartLedger{
		carts:    make(map[string][]entity.CartLine),
		tx:       tx,
		repo:     repo,
		products: products,
		notifier: notifier,
		log:      log,
	}
}

// Load replaces the memory state with the persisted carts.
func (l *CartLedger) Load(ctx context.Context) error {
	lines, err := l.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load carts: %w", err)
	}

	carts := make(map[string][]entity.CartLine)
	for _, line := range lines {
		carts[line.Location] = append(carts[line.Location], line)
	}

	l.mu.Lock()
	l.carts = carts
	l.mu.Unlock()

	l.log.Info("carts restored", zap.Int("locations", len(carts)), zap.Int("lines", len(lines)))
	return nil
}

// AddItem adds one unit of a product to a location's cart.
func (l *CartLedger) AddItem(ctx context.Context, location string, productID uuid.UUID) ([]entity.CartLine, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		l.notifier.Notify(ctx, "Commande", ErrNoLocation.Message, enum.SeverityWarning)
		return nil, ErrNoLocation
	}

	product, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.copyLines(location)
	if i := indexOf(lines, productID); i >= 0 {
		lines[i].Quantity++
	} else {
		lines = append(lines, entity.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Price:     product.Price,
			Quantity:  1,
		})
	}

	if err := l.store(ctx, location, lines); err != nil {
		return nil, err
	}
	return l.copyLines(location), nil
}

// AdjustQuantity changes a line's quantity by delta. Quantity never drops
// below 1; use RemoveLine to drop a line.
func (l *CartLedger) AdjustQuantity(ctx context.Context, location string, productID uuid.UUID, delta int) ([]entity.CartLine, error) {
	location = strings.TrimSpace(location)
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.copyLines(location)
	i := indexOf(lines, productID)
	if i < 0 {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	lines[i].Quantity = max(1, lines[i].Quantity+delta)

	if err := l.store(ctx, location, lines); err != nil {
		return nil, err
	}
	return l.copyLines(location), nil
}

// RemoveLine drops the first line of a product.
func (l *CartLedger) RemoveLine(ctx context.Context, location string, productID uuid.UUID) ([]entity.CartLine, error) {
	location = strings.TrimSpace(location)
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := l.copyLines(location)
	i := indexOf(lines, productID)
	if i < 0 {
		return nil, apperror.NewNotFoundError("Cart line")
	}
	lines = append(lines[:i], lines[i+1:]...)

	if err := l.store(ctx, location, lines); err != nil {
		return nil, err
	}
	return l.copyLines(location), nil
}

// ClearCart empties a location. Clearing an empty location is a no-op.
func (l *CartLedger) ClearCart(ctx context.Context, location string) error {
	location = strings.TrimSpace(location)
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.carts[location]) == 0 {
		return nil
	}
	return l.store(ctx, location, nil)
}

// Transfer appends the source lines after the target lines and empties the
// source. Lines of the same product are kept apart.
func (l *CartLedger) Transfer(ctx context.Context, source, target string) ([]entity.CartLine, error) {
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrNoLocation
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if source == target || len(l.carts[source]) == 0 {
		return l.copyLines(target), nil
	}

	merged := append(l.copyLines(target), l.copyLines(source)...)
	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := l.repo.Replace(ctx, target, merged); err != nil {
			return err
		}
		return l.repo.Replace(ctx, source, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("transfer cart: %w", err)
	}

	l.apply(target, merged)
	l.apply(source, nil)
	l.log.Info("cart transferred", zap.String("from", source), zap.String("to", target), zap.Int("lines", len(merged)))
	return l.copyLines(target), nil
}

// Lines returns a copy of a location's lines in insertion order.
func (l *CartLedger) Lines(location string) []entity.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyLines(strings.TrimSpace(location))
}

// Total is Σ price × quantity of a location's lines.
func (l *CartLedger) Total(location string) decimal.Decimal {
	return cartTotal(l.Lines(location))
}

// IsOccupied reports whether a location has at least one line.
func (l *CartLedger) IsOccupied(location string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.carts[strings.TrimSpace(location)]) > 0
}

// Occupied returns the locations with lines, sorted.
func (l *CartLedger) Occupied() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.carts))
	for loc, lines := range l.carts {
		if len(lines) > 0 {
			out = append(out, loc)
		}
	}
	sort.Strings(out)
	return out
}

// checkout runs fn with a snapshot of a location's lines while holding the
// ledger. When fn succeeds the location is emptied in memory; fn itself
// must clear the persisted lines in its transaction.
func (l *CartLedger) checkout(location string, fn func(lines []entity.CartLine) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := fn(l.copyLines(location)); err != nil {
		return err
	}
	l.apply(location, nil)
	return nil
}

func (l *CartLedger) store(ctx context.Context, location string, lines []entity.CartLine) error {
	if err := l.repo.Replace(ctx, location, lines); err != nil {
		return fmt.Errorf("save cart %q: %w", location, err)
	}
	l.apply(location, lines)
	return nil
}

func (l *CartLedger) apply(location string, lines []entity.CartLine) {
	if len(lines) == 0 {
		delete(l.carts, location)
		return
	}
	l.carts[location] = lines
}

func (l *CartLedger) copyLines(location string) []entity.CartLine {
	src := l.carts[location]
	out := make([]entity.CartLine, len(src))
	copy(out, src)
	return out
}

func indexOf(lines []entity.CartLine, productID uuid.UUID) int {
	for i := range lines {
		if lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func cartTotal(lines []entity.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
