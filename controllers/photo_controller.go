package controllers

import (
	"net/http"

	"github.com/badinlee/sister-fitness/utils"

	"github.com/gin-gonic/gin"
)

type UploadPhotoRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadMealPhoto stores a photo and returns the URL to attach to a
// log entry.
func UploadMealPhoto(c *gin.Context) {
	var req UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	url, err := utils.UploadMealPhoto(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
