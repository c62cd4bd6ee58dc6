package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vigilnet/internal/models"
	"vigilnet/internal/repository"
)

type ProfileHandler interface {
	SaveProfile(c *gin.Context)
	GetProfileByID(c *gin.Context)
	GetAllProfiles(c *gin.Context)
}

type profileHandler struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

func NewProfileHandler(profileRepo repository.ProfileRepository, logger *zap.Logger) ProfileHandler {
	return &profileHandler{profileRepo: profileRepo, logger: logger}
}

// SaveProfileRequest is the extractor's profile upsert payload.
type SaveProfileRequest struct {
	ID        int64   `json:"id" binding:"required"`
	Username  string  `json:"username" binding:"required"`
	FirstName *string `json:"first_name"`
	Phone     *string `json:"phone"`
	Platform  string  `json:"platform"`
}

// SaveProfile handles POST /api/profiles
func (h *profileHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Rejected profile payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: id, username"})
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = "Telegram"
	}

	profile := &models.Profile{
		ID:        req.ID,
		Username:  req.Username,
		FirstName: req.FirstName,
		Phone:     req.Phone,
		Platform:  platform,
	}

	if err := h.profileRepo.SaveProfile(profile); err != nil {
		h.logger.Error("Failed to save profile", zap.Int64("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// GetProfileByID handles GET /api/profiles/:id
func (h *profileHandler) GetProfileByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid profile ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid profile ID"})
		return
	}

	profile, err := h.profileRepo.GetProfileByID(id)
	if err != nil {
		h.logger.Error("Failed to get profile", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve profile"})
		return
	}

	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// GetAllProfiles handles GET /api/profiles
func (h *profileHandler) GetAllProfiles(c *gin.Context) {
	profiles, err := h.profileRepo.GetAllProfiles()
	if err != nil {
		h.logger.Error("Failed to get profiles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profiles})
}
