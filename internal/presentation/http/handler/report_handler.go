package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
)

// ReportHandler serves the dashboard figures and the sales export
type ReportHandler struct {
	reportService   *service.ReportService
	documentService *service.DocumentService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, documentService *service.DocumentService) *ReportHandler {
	return &ReportHandler{reportService: reportService, documentService: documentService}
}

// Summary aggregates revenue, costs and top products over a period.
// start_date and end_date default to today.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary computed successfully", summary)
}

// Trend returns revenue and expenses of the last seven days
func (h *ReportHandler) Trend(c *gin.Context) {
	trend, err := h.reportService.Trend(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Trend computed successfully", trend)
}

// ExportSales renders the sales of a period as a spreadsheet
func (h *ReportHandler) ExportSales(c *gin.Context) {
	file, err := h.documentService.SalesSheet(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, file.Name, file.ContentType, file.Data)
}
