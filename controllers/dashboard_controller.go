package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/badinlee/sister-fitness/services"

	"github.com/gin-gonic/gin"
)

func GetDashboard(c *gin.Context) {
	userID := c.GetUint("userID")

	d, err := services.GetDashboard(userID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found", "onboarding_required": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

func GetLeaderboard(c *gin.Context) {
	rows, err := services.Leaderboard(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}
