package handlers

import (
	"net/http"
	"time"

	availabilityRepo "carematch/database/repository/availability"
	providerRepo "carematch/database/repository/provider"
	"carematch/models"
	"carematch/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProviderHandler covers the caregiver profile and availability surface.
type ProviderHandler struct {
	Providers    providerRepo.ProviderRepository
	Availability availabilityRepo.AvailabilityRepository
	Logger       *zap.Logger
}

func NewProviderHandler(providers providerRepo.ProviderRepository, availability availabilityRepo.AvailabilityRepository, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{Providers: providers, Availability: availability, Logger: logger}
}

type upsertProviderInput struct {
	ID      string                 `json:"id"`
	Name    string                 `json:"name" binding:"required"`
	Email   string                 `json:"email" binding:"omitempty,email"`
	Profile models.ProviderProfile `json:"profile" binding:"required"`
}

// UpsertProvider creates or replaces a caregiver profile.
func (h *ProviderHandler) UpsertProvider(c *gin.Context) {
	var input upsertProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	p := models.Provider{
		ID:        input.ID,
		Name:      input.Name,
		Email:     input.Email,
		Profile:   input.Profile,
		CreatedAt: time.Now(),
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := h.Providers.Upsert(c.Request.Context(), &p); err != nil {
		h.Logger.Error("failed to upsert provider", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save provider", err.Error())
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetProvider returns one caregiver profile.
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	id := c.Param("id")

	p, err := h.Providers.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch provider", err.Error())
		return
	}
	if p == nil {
		utils.JSONError(c, http.StatusNotFound, "not found", "provider "+id+" not found")
		return
	}

	c.JSON(http.StatusOK, p)
}

type availabilitySlotInput struct {
	Date        string            `json:"date" binding:"required,datetime=2006-01-02"`
	TimeWindow  models.TimeWindow `json:"timeWindow" binding:"required,timewindow"`
	IsAvailable bool              `json:"isAvailable"`
}

// SetAvailability bulk-declares availability slots for one provider.
func (h *ProviderHandler) SetAvailability(c *gin.Context) {
	providerID := c.Param("id")
	var input struct {
		Slots []availabilitySlotInput `json:"slots" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	p, err := h.Providers.GetByID(ctx, providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch provider", err.Error())
		return
	}
	if p == nil {
		utils.JSONError(c, http.StatusNotFound, "not found", "provider "+providerID+" not found")
		return
	}

	rows := make([]models.ProviderAvailability, 0, len(input.Slots))
	for _, slot := range input.Slots {
		rows = append(rows, models.ProviderAvailability{
			ProviderID:  providerID,
			Date:        slot.Date,
			TimeWindow:  slot.TimeWindow,
			IsAvailable: slot.IsAvailable,
		})
	}
	if err := h.Availability.BulkSet(ctx, rows); err != nil {
		h.Logger.Error("failed to save availability", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"declared": len(rows)})
}
