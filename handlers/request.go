package handlers

import (
	"net/http"
	"time"

	offerRepo "carematch/database/repository/offer"
	requestRepo "carematch/database/repository/request"
	"carematch/models"
	"carematch/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestHandler covers the thin intake surface around the engine: creating
// pending requests and reading them back with their offers.
type RequestHandler struct {
	Requests requestRepo.RequestRepository
	Offers   offerRepo.OfferRepository
	Logger   *zap.Logger
}

func NewRequestHandler(requests requestRepo.RequestRepository, offers offerRepo.OfferRepository, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{Requests: requests, Offers: offers, Logger: logger}
}

type createRequestInput struct {
	RequesterID       string                   `json:"requesterId" binding:"required"`
	ServiceType       models.ServiceType       `json:"serviceType" binding:"required"`
	Date              string                   `json:"date" binding:"required,datetime=2006-01-02"`
	TimeWindow        models.TimeWindow        `json:"timeWindow" binding:"required,timewindow"`
	Location          models.Location          `json:"location" binding:"required"`
	SubjectDetails    string                   `json:"subjectDetails"`
	IsRecurring       bool                     `json:"isRecurring"`
	RecurrencePattern models.RecurrencePattern `json:"recurrencePattern" binding:"omitempty,recurrence"`
	RecurrenceEndDate string                   `json:"recurrenceEndDate" binding:"omitempty,datetime=2006-01-02"`
}

// CreateRequest records a new pending service request.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input createRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.IsRecurring && (input.RecurrencePattern == "" || input.RecurrenceEndDate == "") {
		utils.JSONError(c, http.StatusBadRequest, "invalid input",
			"recurring requests need a recurrencePattern and recurrenceEndDate")
		return
	}

	req := models.ServiceRequest{
		ID:                uuid.New().String(),
		RequesterID:       input.RequesterID,
		ServiceType:       input.ServiceType,
		Date:              input.Date,
		TimeWindow:        input.TimeWindow,
		Location:          input.Location,
		SubjectDetails:    input.SubjectDetails,
		Status:            models.StatusPending,
		IsRecurring:       input.IsRecurring,
		RecurrencePattern: input.RecurrencePattern,
		RecurrenceEndDate: input.RecurrenceEndDate,
		CreatedAt:         time.Now(),
	}
	if err := h.Requests.Create(c.Request.Context(), &req); err != nil {
		h.Logger.Error("failed to create request", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create request", err.Error())
		return
	}

	c.JSON(http.StatusCreated, req)
}

// GetRequest returns one request along with the offers proposed for it.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	req, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch request", err.Error())
		return
	}
	if req == nil {
		utils.JSONError(c, http.StatusNotFound, "not found", "service request "+id+" not found")
		return
	}

	offers, err := h.Offers.ListByRequest(ctx, id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch offers", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req, "offers": offers})
}
