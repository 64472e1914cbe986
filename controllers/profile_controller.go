package controllers

import (
	"errors"
	"net/http"

	"github.com/badinlee/sister-fitness/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	profile, err := services.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			// the client branches to onboarding on this flag
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found", "onboarding_required": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpsertProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var in services.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.UpsertProfile(userID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ApplyRecommendedTarget overwrites the stored calorie target with the
// Mifflin-St Jeor suggestion shown on the dashboard.
func ApplyRecommendedTarget(c *gin.Context) {
	userID := c.GetUint("userID")

	profile, err := services.ApplyRecommendedTarget(userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found", "onboarding_required": true})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
