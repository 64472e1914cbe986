package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/badinlee/sister-fitness/services"

	"github.com/gin-gonic/gin"
)

func GetWeeklyReport(c *gin.Context) {
	userID := c.GetUint("userID")

	summary, err := services.BuildWeeklySummary(userID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found", "onboarding_required": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func EmailWeeklyReport(c *gin.Context) {
	userID := c.GetUint("userID")

	if err := services.EmailWeeklyReport(userID, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "weekly report sent"})
}
