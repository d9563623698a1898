package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fixit-be/issues"
	"fixit-be/models"
)

// IssueTracker is the part of the tracker the issue endpoints use.
type IssueTracker interface {
	ReportIssue(ctx context.Context, f issues.ReportFields) (models.Issue, error)
	ViewIssue(id string) (models.Issue, bool)
	UpvoteIssue(ctx context.Context, id string) (models.Issue, bool, error)
	AddUpdate(ctx context.Context, id, message string) (models.IssueUpdate, bool, error)
	ListFiltered(c issues.Criteria) []models.Issue
	Stats() issues.Stats
	Analytics() issues.Analytics
	Located(limit int) []issues.MapPin
	User() models.User
}

// IssueController serves the issue endpoints. It also remembers which issues
// each session has upvoted so a second click is refused; the tracker itself
// accepts any number of upvotes.
type IssueController struct {
	tracker IssueTracker

	mu    sync.Mutex
	voted map[string]map[string]bool
}

func NewIssueController(t IssueTracker) *IssueController {
	setupValidator()
	return &IssueController{
		tracker: t,
		voted:   make(map[string]map[string]bool),
	}
}

type reportIssueInput struct {
	Title       string   `json:"title" binding:"notblank,max=200"`
	Description string   `json:"description" binding:"notblank,max=1000"`
	Category    string   `json:"category" binding:"required,oneof=road-repair trash-pickup graffiti-removal streetlight park-maintenance other"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      string   `json:"status" binding:"omitempty,oneof=reported acknowledged in-progress resolved"`
	Location    string   `json:"location" binding:"notblank,max=200"`
	ImageURL    string   `json:"imageUrl" binding:"omitempty,url"`
	ReportedBy  string   `json:"reportedBy" binding:"max=100"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// CreateIssue handles the creation of a new issue
func (ic *IssueController) CreateIssue(c *gin.Context) {
	var input reportIssueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if fieldErrs, ok := validationErrors(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := models.Medium
	if input.Priority != "" {
		priority = models.IssuePriority(input.Priority)
	}
	status := models.Reported
	if input.Status != "" {
		status = models.IssueStatus(input.Status)
	}
	reportedBy := input.ReportedBy
	if reportedBy == "" {
		reportedBy = ic.tracker.User().Name
	}
	// The report form sends an empty imageUrl when no photo is attached.
	var imageURL *string
	if input.ImageURL != "" {
		imageURL = &input.ImageURL
	}

	issue, err := ic.tracker.ReportIssue(c.Request.Context(), issues.ReportFields{
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		Priority:    priority,
		Status:      status,
		Location:    input.Location,
		ImageURL:    imageURL,
		ReportedBy:  reportedBy,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues returns the issues matching the search and facet filters,
// optionally paginated
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	criteria := issues.Criteria{
		Query:    c.Query("search"),
		Category: c.DefaultQuery("category", issues.All),
		Status:   c.DefaultQuery("status", issues.All),
		Priority: c.DefaultQuery("priority", issues.All),
	}
	found := ic.tracker.ListFiltered(criteria)
	total := len(found)

	// Without a limit the whole filtered list is returned.
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	totalPages := 1
	if limit > 0 {
		if limit > 100 {
			limit = 100
		}
		totalPages = (total + limit - 1) / limit
		start := (page - 1) * limit
		switch {
		case start >= total:
			found = []models.Issue{}
		case start+limit < total:
			found = found[start : start+limit]
		default:
			found = found[start:]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      found,
		"totalIssues": total,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, ok := ic.tracker.ViewIssue(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issue":        issue,
		"userHasVoted": ic.hasVoted(SessionKey(c), issue.ID),
	})
}

// HandleVoteOnIssue upvotes an issue once per session
func (ic *IssueController) HandleVoteOnIssue(c *gin.Context) {
	issueID := c.Param("id")
	session := SessionKey(c)

	if _, ok := ic.tracker.ViewIssue(issueID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if !ic.markVoted(session, issueID) {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already upvoted this issue", "userHasVoted": true})
		return
	}

	issue, ok, err := ic.tracker.UpvoteIssue(c.Request.Context(), issueID)
	if !ok {
		ic.unmarkVoted(session, issueID)
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Vote cast successfully",
		"votes":        issue.Upvotes,
		"userHasVoted": true,
	})
}

type addUpdateInput struct {
	Message string `json:"message" binding:"notblank,max=2000"`
}

// AddIssueUpdate posts a comment from the session user on an issue
func (ic *IssueController) AddIssueUpdate(c *gin.Context) {
	var input addUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if fieldErrs, ok := validationErrors(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, ok, err := ic.tracker.AddUpdate(c.Request.Context(), c.Param("id"), input.Message)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save update"})
		return
	}

	c.JSON(http.StatusCreated, update)
}

// GetIssueStats returns the dashboard summary counts
func (ic *IssueController) GetIssueStats(c *gin.Context) {
	c.JSON(http.StatusOK, ic.tracker.Stats())
}

// GetIssueAnalytics returns analytical data about issues
func (ic *IssueController) GetIssueAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, ic.tracker.Analytics())
}

// RecentIssues returns the most recent issues that have latitude and longitude
func (ic *IssueController) RecentIssues(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "19"))
	if err != nil || limit < 1 {
		limit = 19
	}
	c.JSON(http.StatusOK, ic.tracker.Located(limit))
}

func (ic *IssueController) hasVoted(session, issueID string) bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	return ic.voted[session][issueID]
}

// markVoted records the vote and reports false if the session already voted.
func (ic *IssueController) markVoted(session, issueID string) bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	if ic.voted[session] == nil {
		ic.voted[session] = make(map[string]bool)
	}
	if ic.voted[session][issueID] {
		return false
	}
	ic.voted[session][issueID] = true
	log.WithFields(log.Fields{"session": session, "issue_id": issueID}).Debug("Upvote accepted")
	return true
}

func (ic *IssueController) unmarkVoted(session, issueID string) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	delete(ic.voted[session], issueID)
}

// SessionKey identifies the caller's session: the X-Session-ID header when
// present, the client IP otherwise.
func SessionKey(c *gin.Context) string {
	if id := c.GetHeader("X-Session-ID"); id != "" {
		return id
	}
	return c.ClientIP()
}
