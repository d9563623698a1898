package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fixit-be/engagement"
	"fixit-be/models"
)

// EngagementTracker is the part of the tracker the contributor endpoints use.
type EngagementTracker interface {
	User() models.User
	EngagementSnapshot() engagement.Snapshot
	RegisterForEvent(eventID string) bool
	RecordAction(a engagement.Action) error
	LogVolunteerHours(hours int) error
}

type UserController struct {
	tracker EngagementTracker
}

func NewUserController(t EngagementTracker) *UserController {
	setupValidator()
	return &UserController{tracker: t}
}

// GetMe returns the session contributor's counters
func (uc *UserController) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, uc.tracker.User())
}

// GetEngagement returns level, badge and reward standing
func (uc *UserController) GetEngagement(c *gin.Context) {
	c.JSON(http.StatusOK, uc.tracker.EngagementSnapshot())
}

// RegisterForEvent signs the contributor up for a volunteer event. Only the
// first registration per event earns points.
func (uc *UserController) RegisterForEvent(c *gin.Context) {
	registered := uc.tracker.RegisterForEvent(c.Param("id"))

	message := "Registered for event"
	if !registered {
		message = "Already registered for this event"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"registered": registered,
		"points":     uc.tracker.User().Points,
	})
}

// RecordAction credits one of the named engagement actions
func (uc *UserController) RecordAction(c *gin.Context) {
	action := engagement.Action(c.Param("action"))
	if action == engagement.ActionReportIssue || action == engagement.ActionEventRegistration {
		// Earned through their own endpoints.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action is recorded automatically"})
		return
	}

	if err := uc.tracker.RecordAction(action); err != nil {
		if errors.Is(err, engagement.ErrUnknownAction) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record action"})
		return
	}

	c.JSON(http.StatusOK, uc.tracker.User())
}

type logHoursInput struct {
	Hours int `json:"hours" binding:"required,min=1,max=24"`
}

// LogVolunteerHours adds completed volunteer hours
func (uc *UserController) LogVolunteerHours(c *gin.Context) {
	var input logHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if fieldErrs, ok := validationErrors(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := uc.tracker.LogVolunteerHours(input.Hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, uc.tracker.User())
}
