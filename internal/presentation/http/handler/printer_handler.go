package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// PrintReceipt prints the receipt of a sale. The receipt is returned even
// when the printer fails so the screen can show it.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}

// PrintZTicket prints the closing report of a closed session.
func (h *PrinterHandler) PrintZTicket(c *gin.Context) {
	id, ok := paramID(c, "id", "session")
	if !ok {
		return
	}

	report, err := h.printerService.PrintZTicket(c.Request.Context(), id)
	if err != nil {
		if report != nil {
			response.OK(c, "Z ticket generated but printing failed", gin.H{
				"report":  report,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Z ticket printed successfully", gin.H{
		"report": report,
	})
}
