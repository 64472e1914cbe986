package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/badinlee/sister-fitness/services"

	"github.com/gin-gonic/gin"
)

// AppendEntry saves a check-in (weight, food, or both) and returns the
// stored row plus the coach's one-liner for the toast.
func AppendEntry(c *gin.Context) {
	userID := c.GetUint("userID")

	var in services.EntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := services.AppendEntry(userID, in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advice := ""
	if profile, perr := services.GetProfile(userID); perr == nil {
		entries, lerr := services.ListDayEntries(userID, entry.Timestamp)
		if lerr == nil {
			advice = services.CheckinAdvice(profile, entry.Weight, services.TodayTotal(entries, entry.Timestamp))
		}
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry, "advice": advice})
}

// ListEntries returns the full log, or one day when ?date=YYYY-MM-DD is
// given. Day responses carry the revision token the edit grid must pass
// back on save.
func ListEntries(c *gin.Context) {
	userID := c.GetUint("userID")

	dateStr := c.Query("date")
	if dateStr == "" {
		entries, err := services.ListAllEntries(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	entries, err := services.ListDayEntries(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":  entries,
		"revision": services.DayRevision(entries),
	})
}

type editDayRequest struct {
	Date     string                `json:"date" binding:"required"` // YYYY-MM-DD
	Revision time.Time             `json:"revision"`
	Rows     []services.DayEditRow `json:"rows"`
}

// EditDay applies the edit grid for one day. A stale revision gets a
// 409 so the client can re-fetch instead of clobbering someone else.
func EditDay(c *gin.Context) {
	userID := c.GetUint("userID")

	var req editDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	entries, err := services.ReplaceDay(userID, date, req.Revision, req.Rows)
	if err != nil {
		if errors.Is(err, services.ErrEditConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":  entries,
		"revision": services.DayRevision(entries),
	})
}
