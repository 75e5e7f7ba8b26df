package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"carematch/models"
	"carematch/services/dispatch"
	"carematch/services/notification"
	"carematch/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// rankCacheTTL bounds how long a ranked candidate list may be served from
// cache; availability and conflicts move quickly.
const rankCacheTTL = 2 * time.Minute

// DispatchHandler fronts the dispatch engine over HTTP.
type DispatchHandler struct {
	Svc      dispatch.DispatchService
	Cache    *redis.Client
	Notifier *notification.Dispatcher
	Logger   *zap.Logger
}

func NewDispatchHandler(svc dispatch.DispatchService, cache *redis.Client, notifier *notification.Dispatcher, logger *zap.Logger) *DispatchHandler {
	return &DispatchHandler{Svc: svc, Cache: cache, Notifier: notifier, Logger: logger}
}

// RankCandidates returns the top provider suggestions for one open request.
func (h *DispatchHandler) RankCandidates(c *gin.Context) {
	requestID := c.Param("id")
	ctx := c.Request.Context()

	cacheKey := "rank:" + requestID
	if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	result, err := h.Svc.RankCandidates(ctx, requestID)
	if err != nil {
		respondDispatchError(c, err)
		return
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := h.Cache.Set(ctx, cacheKey, payload, rankCacheTTL).Err(); err != nil {
			h.Logger.Warn("failed to cache ranking", zap.String("requestId", requestID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, result)
}

// AssignRecurring materializes a recurring series against one provider.
func (h *DispatchHandler) AssignRecurring(c *gin.Context) {
	parentID := c.Param("id")
	var input struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Svc.AssignRecurring(c.Request.Context(), parentID, input.ProviderID)
	if err != nil {
		respondDispatchError(c, err)
		return
	}

	// Side effects are the caller's job, not the engine's: queue the notice
	// only after a successful result.
	h.Notifier.EnqueueDispatchNotice(models.DispatchNoticePayload{
		ProviderID: input.ProviderID,
		RequestID:  parentID,
		Kind:       "assignment",
		Title:      "New recurring assignment",
		Body:       fmt.Sprintf("You have been assigned %d new visits.", result.CreatedCount),
	})

	c.JSON(http.StatusOK, result)
}

// ProposeOffers fans one provider out as offers across the requester's other
// open requests.
func (h *DispatchHandler) ProposeOffers(c *gin.Context) {
	sourceID := c.Param("id")
	var input struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Svc.ProposeAcrossOpenRequests(c.Request.Context(), sourceID, input.ProviderID)
	if err != nil {
		respondDispatchError(c, err)
		return
	}

	if result.CreatedCount > 0 {
		h.Notifier.EnqueueDispatchNotice(models.DispatchNoticePayload{
			ProviderID: input.ProviderID,
			RequestID:  sourceID,
			Kind:       "proposal",
			Title:      "You were proposed for upcoming requests",
			Body:       fmt.Sprintf("You were proposed for %d of %d upcoming requests.", result.CreatedCount, result.TotalCandidates),
		})
	}

	c.JSON(http.StatusOK, result)
}

// respondDispatchError maps the engine's error taxonomy onto HTTP statuses.
func respondDispatchError(c *gin.Context, err error) {
	switch {
	case dispatch.HasCode(err, dispatch.CodeNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case dispatch.HasCode(err, dispatch.CodeValidation):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case dispatch.HasCode(err, dispatch.CodeConflict):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())
	case dispatch.HasCode(err, dispatch.CodeCapability):
		utils.JSONError(c, http.StatusUnprocessableEntity, "provider cannot perform this service", err.Error())
	case dispatch.HasCode(err, dispatch.CodeEmptyResult):
		utils.JSONError(c, http.StatusUnprocessableEntity, "nothing to dispatch", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "dispatch failed", err.Error())
	}
}
