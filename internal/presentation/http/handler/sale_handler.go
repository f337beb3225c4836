package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService     *service.SaleService
	documentService *service.DocumentService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, documentService *service.DocumentService) *SaleHandler {
	return &SaleHandler{saleService: saleService, documentService: documentService}
}

// List handles listing sales, newest first
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: pagination.Params{Page: filter.Page, PerPage: filter.PerPage},
		Location:   filter.Location,
	}
	if filter.Status != "" {
		status := enum.SaleStatus(filter.Status)
		if !status.Valid() {
			response.BadRequest(c, "Invalid sale status")
			return
		}
		params.Status = &status
	}
	if filter.SessionID != "" {
		if id, err := uuid.Parse(filter.SessionID); err == nil {
			params.SessionID = &id
		}
	}
	if filter.StartDate != "" {
		day, err := service.NormalizeDate(filter.StartDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		params.StartDay = day
	}
	if filter.EndDate != "" {
		day, err := service.NormalizeDate(filter.EndDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		params.EndDay = day
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Create handles a back-office sale, quotation or draft
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.SaleItemInput, len(req.Items))
	for i, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID: "+item.ProductID)
			return
		}
		items[i] = service.SaleItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		CustomerName:   req.CustomerName,
		Status:         enum.SaleStatus(req.Status),
		PaymentMethod:  enum.PaymentMethod(req.PaymentMethod),
		Location:       req.Location,
		AmountReceived: req.AmountReceived,
		CashierName:    GetProfileName(c),
		Items:          items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles getting a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// UpdateStatus moves a sale along its lifecycle
func (h *SaleHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	var req request.UpdateSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.saleService.UpdateStatus(c.Request.Context(), id, enum.SaleStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale status updated", sale)
}

// UpdatePreparation changes the kitchen state of a sale
func (h *SaleHandler) UpdatePreparation(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	var req request.UpdatePreparationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.saleService.UpdatePreparation(c.Request.Context(), id, enum.PreparationStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preparation status updated", sale)
}

// Refund records the reversal of a confirmed or delivered sale
func (h *SaleHandler) Refund(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	refund, err := h.saleService.Refund(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale refunded", refund)
}

// Invoice renders the sale as a PDF invoice
func (h *SaleHandler) Invoice(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	file, err := h.documentService.Invoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, file.Name, file.ContentType, file.Data)
}
