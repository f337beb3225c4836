package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos/internal/presentation/http/middleware"
	"github.com/sangkips/restopos/pkg/utils"
)

// GetProfileID extracts the unlocked profile ID from the Gin context
func GetProfileID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get(middleware.ProfileIDKey)
	if !exists {
		return nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetProfileName extracts the unlocked profile name from the Gin context
func GetProfileName(c *gin.Context) string {
	return c.GetString(middleware.ProfileNameKey)
}

// paramID parses a UUID path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
