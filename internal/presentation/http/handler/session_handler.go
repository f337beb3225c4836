package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos/pkg/pagination"
)

// SessionHandler handles the cash register: counting, opening and closing.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Denominations lists the bills and coins of the counting screen
func (h *SessionHandler) Denominations(c *gin.Context) {
	response.OK(c, "Denominations retrieved successfully", h.sessionService.Denominations())
}

// Count totals a bill and coin breakdown
func (h *SessionHandler) Count(c *gin.Context) {
	var req request.CashCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	count, err := h.sessionService.CountCash(req.Count)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash counted", count)
}

// Open opens the register for the unlocked profile
func (h *SessionHandler) Open(c *gin.Context) {
	var req request.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var cashierID string
	if id := GetProfileID(c); id != nil {
		cashierID = id.String()
	}

	result, err := h.sessionService.Open(c.Request.Context(), &service.OpenInput{
		CashierID:      cashierID,
		CashierName:    GetProfileName(c),
		Count:          req.Count,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash session opened", result)
}

// Current returns the open session and its expected balance
func (h *SessionHandler) Current(c *gin.Context) {
	status, err := h.sessionService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session retrieved", status)
}

// Close audits the drawer and closes the open session
func (h *SessionHandler) Close(c *gin.Context) {
	var req request.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.sessionService.Close(c.Request.Context(), &service.CloseInput{
		Count:          req.Count,
		CountedBalance: req.CountedBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session closed", report)
}

// History lists closed sessions, newest first
func (h *SessionHandler) History(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.sessionService.History(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cash sessions retrieved successfully", result)
}

// Report rebuilds the closing report of a closed session
func (h *SessionHandler) Report(c *gin.Context) {
	id, ok := paramID(c, "id", "session")
	if !ok {
		return
	}

	report, err := h.sessionService.Report(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Closing report retrieved", report)
}
