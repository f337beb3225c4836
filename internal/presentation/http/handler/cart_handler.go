package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// CartHandler handles the open tickets of each table.
type CartHandler struct {
	ledger      *service.CartLedger
	saleService *service.SaleService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(ledger *service.CartLedger, saleService *service.SaleService) *CartHandler {
	return &CartHandler{ledger: ledger, saleService: saleService}
}

type cartView struct {
	Location string            `json:"location"`
	Lines    []entity.CartLine `json:"lines"`
	Total    decimal.Decimal   `json:"total"`
}

func newCartView(location string, lines []entity.CartLine) cartView {
	if lines == nil {
		lines = []entity.CartLine{}
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return cartView{Location: location, Lines: lines, Total: total}
}

// ListOccupied returns every location with an open ticket
func (h *CartHandler) ListOccupied(c *gin.Context) {
	locations := h.ledger.Occupied()
	carts := make([]cartView, 0, len(locations))
	for _, loc := range locations {
		carts = append(carts, newCartView(loc, h.ledger.Lines(loc)))
	}

	response.OK(c, "Carts retrieved successfully", carts)
}

// Get returns one location's cart
func (h *CartHandler) Get(c *gin.Context) {
	location := c.Param("location")
	response.OK(c, "Cart retrieved successfully", newCartView(location, h.ledger.Lines(location)))
}

// AddItem adds one unit of a product
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	location := c.Param("location")
	lines, err := h.ledger.AddItem(c.Request.Context(), location, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", newCartView(location, lines))
}

// AdjustItem changes a line quantity
func (h *CartHandler) AdjustItem(c *gin.Context) {
	productID, ok := paramID(c, "product_id", "product")
	if !ok {
		return
	}

	var req request.AdjustCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	location := c.Param("location")
	lines, err := h.ledger.AdjustQuantity(c.Request.Context(), location, productID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", newCartView(location, lines))
}

// RemoveItem drops a line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := paramID(c, "product_id", "product")
	if !ok {
		return
	}

	location := c.Param("location")
	lines, err := h.ledger.RemoveLine(c.Request.Context(), location, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", newCartView(location, lines))
}

// Clear empties a location
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.ledger.ClearCart(c.Request.Context(), c.Param("location")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Transfer moves a ticket to another table
func (h *CartHandler) Transfer(c *gin.Context) {
	var req request.TransferCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines, err := h.ledger.Transfer(c.Request.Context(), c.Param("location"), req.Target)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart transferred", newCartView(req.Target, lines))
}

// Settle checks out a location's cart as a confirmed sale
func (h *CartHandler) Settle(c *gin.Context) {
	// an empty body settles in cash for the exact total
	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.saleService.Settle(c.Request.Context(), &service.SettleInput{
		Location:       c.Param("location"),
		PaymentMethod:  enum.PaymentMethod(req.PaymentMethod),
		AmountTendered: req.AmountTendered,
		CustomerName:   req.CustomerName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded", sale)
}
