package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
)

// AssistantHandler answers free-text questions about the business
type AssistantHandler struct {
	assistantService *service.AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Ask forwards a question to the assistant. A failing model yields the
// fallback answer with degraded set, not an error.
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req request.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	answer, err := h.assistantService.Ask(c.Request.Context(), req.Question)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Answer generated", answer)
}
