package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/badinlee/sister-fitness/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	lookup *services.FoodLookupService
	vision *services.VisionService
	coach  *services.CoachService
}

func NewFoodController(lookup *services.FoodLookupService, vision *services.VisionService, coach *services.CoachService) *FoodController {
	return &FoodController{lookup: lookup, vision: vision, coach: coach}
}

// GET /food/lookup?q=fried+rice
func (fc *FoodController) Lookup(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'q' query param"})
		return
	}
	c.JSON(http.StatusOK, fc.lookup.Lookup(q))
}

// POST /food/estimate-photo  { "image_base64": "data:image/..." }
// Photo → Rekognition labels → hybrid lookup on the label text.
func (fc *FoodController) EstimateFromPhoto(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	labels, err := fc.vision.DetectFood(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	result := fc.lookup.Lookup(strings.Join(labels, ", "))
	c.JSON(http.StatusOK, gin.H{"labels": labels, "estimate": result})
}

// GET /coach/recipes — open-ended chef suggestions, shown verbatim.
func (fc *FoodController) SuggestRecipes(c *gin.Context) {
	userID := c.GetUint("userID")

	profile, err := services.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found", "onboarding_required": true})
		return
	}
	entries, err := services.ListAllEntries(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	text, err := fc.coach.SuggestRecipes(entries, profile, time.Now())
	if err != nil {
		// inference failure is shown inline, never fatal
		c.JSON(http.StatusOK, gin.H{"suggestions": "", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": text})
}
