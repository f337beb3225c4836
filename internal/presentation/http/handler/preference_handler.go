package handler

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
)

// PreferenceHandler serves the stored front-end state and the
// notification feed.
type PreferenceHandler struct {
	preferenceService   *service.PreferenceService
	notificationService *service.NotificationService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(
	preferenceService *service.PreferenceService,
	notificationService *service.NotificationService,
) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService:   preferenceService,
		notificationService: notificationService,
	}
}

// Get returns the JSON document stored under a key, or its default
func (h *PreferenceHandler) Get(c *gin.Context) {
	value, err := h.preferenceService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preference retrieved successfully", value)
}

// Put replaces the JSON document stored under a key. The body is stored
// as sent.
func (h *PreferenceHandler) Put(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.preferenceService.Save(c.Request.Context(), c.Param("key"), json.RawMessage(body)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preference saved", json.RawMessage(body))
}

// Notifications returns the latest notifications, newest first
func (h *PreferenceHandler) Notifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notes, err := h.notificationService.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notifications retrieved successfully", notes)
}
