package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos/pkg/pagination"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create records an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	expense, err := h.expenseService.Record(c.Request.Context(), &service.ExpenseInput{
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          req.Date,
		Category:      enum.ExpenseCategory(req.Category),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// List lists expenses, newest first
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ExpenseFilterParams{
		Pagination: pagination.Params{Page: filter.Page, PerPage: filter.PerPage},
	}
	if filter.Category != "" {
		category := enum.ExpenseCategory(filter.Category)
		if !category.Valid() {
			response.BadRequest(c, "Invalid expense category")
			return
		}
		params.Category = &category
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

	result, err := h.expenseService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}
