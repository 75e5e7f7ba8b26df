package routes

import (
	"carematch/handlers"
	"carematch/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints. The dispatch operations mutate
// assignments and offers, so they sit behind the operator gate.
func RegisterRoutes(
	r *gin.Engine,
	dispatchHandler *handlers.DispatchHandler,
	requestHandler *handlers.RequestHandler,
	providerHandler *handlers.ProviderHandler,
) {
	requests := r.Group("/api/requests")
	{
		requests.POST("", requestHandler.CreateRequest)
		requests.GET("/:id", requestHandler.GetRequest)
	}

	providers := r.Group("/api/providers")
	{
		providers.POST("", providerHandler.UpsertProvider)
		providers.GET("/:id", providerHandler.GetProvider)
		providers.PUT("/:id/availability", providerHandler.SetAvailability)
	}

	dispatch := r.Group("/api/dispatch", middleware.OperatorAuthMiddleware())
	{
		dispatch.GET("/requests/:id/candidates", dispatchHandler.RankCandidates)
		dispatch.POST("/requests/:id/assign-recurring", dispatchHandler.AssignRecurring)
		dispatch.POST("/requests/:id/propose", dispatchHandler.ProposeOffers)
	}
}
