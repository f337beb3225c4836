package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
)

// ProfileHandler serves the lock screen: profile list, unlock and
// profile management.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// List returns the profiles shown on the lock screen
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileService.ListProfiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profiles retrieved successfully", profiles)
}

// Create adds a profile
func (h *ProfileHandler) Create(c *gin.Context) {
	var req request.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), &service.CreateProfileInput{
		Name: req.Name,
		Role: req.Role,
		Pin:  req.Pin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Profile created successfully", profile)
}

// Unlock checks the PIN and issues a profile token
func (h *ProfileHandler) Unlock(c *gin.Context) {
	var req request.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	result, err := h.profileService.Unlock(c.Request.Context(), profileID, req.Pin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unlocked", result)
}
