package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"voyago/internal/models/request_models"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// GenerateItinerary godoc
// @Summary Generate a day-by-day itinerary
// @Description Build a time-blocked itinerary of landmarks and meals for a destination
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryRequest true "Itinerary request payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/generate [post]
func (i *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	itinerary, err := i.itineraryService.GenerateItinerary(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}

// ListItineraries godoc
// @Summary List the caller's trips
// @Description Page through previously generated itineraries, newest first
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries [get]
func (i *ItineraryController) ListItineraries(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	trips, err := i.itineraryService.ListItineraries(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetItinerary godoc
// @Summary Get a stored itinerary by ID
// @Description Fetch a previously generated itinerary
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{tripId} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	itinerary, err := i.itineraryService.GetItinerary(c.Request.Context(), c.GetString("user_id"), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}
