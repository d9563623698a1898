package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixit-be/models"
	"fixit-be/storage"
	"fixit-be/tracker"
)

func newTestRouter(t *testing.T) (*gin.Engine, *tracker.Tracker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tr, err := tracker.Open(context.Background(), storage.NewStore(storage.NewMemorySlot()))
	require.NoError(t, err)

	r := gin.New()
	ic := NewIssueController(tr)
	uc := NewUserController(tr)
	r.POST("/api/issues", ic.CreateIssue)
	r.GET("/api/issues", ic.GetAllIssues)
	r.GET("/api/issues/stats", ic.GetIssueStats)
	r.GET("/api/issues/analytics", ic.GetIssueAnalytics)
	r.GET("/api/issues/recent", ic.RecentIssues)
	r.GET("/api/issues/:id", ic.GetIssue)
	r.POST("/api/issues/:id/upvote", ic.HandleVoteOnIssue)
	r.POST("/api/issues/:id/updates", ic.AddIssueUpdate)
	r.GET("/api/me", uc.GetMe)
	r.GET("/api/me/engagement", uc.GetEngagement)
	r.POST("/api/me/actions/:action", uc.RecordAction)
	r.POST("/api/me/hours", uc.LogVolunteerHours)
	r.POST("/api/events/:id/register", uc.RegisterForEvent)
	return r, tr
}

func doJSON(r *gin.Engine, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateIssue(t *testing.T) {
	r, tr := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/issues", map[string]any{
		"title":       "Broken streetlight",
		"description": "Out since Monday",
		"category":    "streetlight",
		"priority":    "low",
		"location":    "Elm St",
		"reportedBy":  "Alex",
		"latitude":    40.7128,
		"longitude":   -74.0060,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var issue models.Issue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	assert.NotEmpty(t, issue.ID)
	assert.Equal(t, models.Reported, issue.Status)
	assert.Equal(t, models.Low, issue.Priority)
	assert.Equal(t, "Alex", issue.ReportedBy)
	assert.Equal(t, 0, issue.Upvotes)
	assert.Empty(t, issue.Updates)
	require.NotNil(t, issue.Latitude)
	assert.Equal(t, 40.7128, *issue.Latitude)

	assert.Equal(t, 260, tr.User().Points)
	assert.Len(t, tr.Issues(), 4)
}

func TestCreateIssue_Defaults(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/issues", map[string]any{
		"title": "Bench", "description": "Broken", "category": "park-maintenance", "location": "Park", "imageUrl": "",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var issue models.Issue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	assert.Equal(t, models.Medium, issue.Priority)
	assert.Equal(t, models.Reported, issue.Status)
	assert.Equal(t, "Community Member", issue.ReportedBy)
	assert.Nil(t, issue.ImageURL)
}

func TestCreateIssue_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want map[string]string
	}{
		{
			name: "missing required fields",
			body: map[string]any{"category": "other"},
			want: map[string]string{
				"title":       "Title is required",
				"description": "Description is required",
				"location":    "Location is required",
			},
		},
		{
			name: "blank title",
			body: map[string]any{"title": "   ", "description": "d", "location": "l", "category": "other"},
			want: map[string]string{"title": "Title is required"},
		},
		{
			name: "unknown category",
			body: map[string]any{"title": "t", "description": "d", "location": "l", "category": "potholes"},
			want: map[string]string{"category": "Category must be one of: road-repair, trash-pickup, graffiti-removal, streetlight, park-maintenance, other"},
		},
		{
			name: "unknown priority",
			body: map[string]any{"title": "t", "description": "d", "location": "l", "category": "other", "priority": "urgent"},
			want: map[string]string{"priority": "Priority must be one of: low, medium, high"},
		},
		{
			name: "latitude out of range",
			body: map[string]any{"title": "t", "description": "d", "location": "l", "category": "other", "latitude": 120.0},
			want: map[string]string{"latitude": "Latitude must be at most 90"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, tr := newTestRouter(t)

			w := doJSON(r, http.MethodPost, "/api/issues", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Errors map[string]string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Errors)
			assert.Len(t, tr.Issues(), 3, "no mutation on invalid input")
			assert.Equal(t, 250, tr.User().Points)
		})
	}
}

func TestCreateIssue_MalformedJSON(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/issues", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestGetAllIssues(t *testing.T) {
	r, _ := newTestRouter(t)

	type listResponse struct {
		Issues      []models.Issue `json:"issues"`
		TotalIssues int            `json:"totalIssues"`
		TotalPages  int            `json:"totalPages"`
	}
	list := func(query string) listResponse {
		w := doJSON(r, http.MethodGet, "/api/issues"+query, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	all := list("")
	assert.Equal(t, 3, all.TotalIssues)
	assert.Equal(t, "1", all.Issues[0].ID)

	resolved := list("?status=resolved")
	require.Len(t, resolved.Issues, 1)
	assert.Equal(t, "3", resolved.Issues[0].ID)

	search := list("?search=CENTER&priority=medium&category=all")
	assert.Equal(t, 2, search.TotalIssues)

	paged := list("?limit=2&page=2")
	assert.Equal(t, 3, paged.TotalIssues)
	assert.Equal(t, 2, paged.TotalPages)
	require.Len(t, paged.Issues, 1)
	assert.Equal(t, "3", paged.Issues[0].ID)

	past := list("?limit=2&page=5")
	assert.Empty(t, past.Issues)
}

func TestGetIssue(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/issues/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Issue        models.Issue `json:"issue"`
		UserHasVoted bool         `json:"userHasVoted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Overflowing trash bin at Park Avenue", resp.Issue.Title)
	assert.False(t, resp.UserHasVoted)

	w = doJSON(r, http.MethodGet, "/api/issues/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleVoteOnIssue_OncePerSession(t *testing.T) {
	r, tr := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/issues/1/upvote", nil, "X-Session-ID", "alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"votes":25`)

	w = doJSON(r, http.MethodPost, "/api/issues/1/upvote", nil, "X-Session-ID", "alice")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/issues/1/upvote", nil, "X-Session-ID", "bob")
	require.Equal(t, http.StatusOK, w.Code)

	issue, _ := tr.ViewIssue("1")
	assert.Equal(t, 26, issue.Upvotes)

	w = doJSON(r, http.MethodGet, "/api/issues/1", nil, "X-Session-ID", "alice")
	assert.Contains(t, w.Body.String(), `"userHasVoted":true`)

	w = doJSON(r, http.MethodPost, "/api/issues/missing/upvote", nil, "X-Session-ID", "alice")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddIssueUpdate(t *testing.T) {
	r, tr := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/issues/2/updates", map[string]string{"message": "Still full this morning"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var update models.IssueUpdate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &update))
	assert.Equal(t, models.RoleUser, update.AuthorRole)
	assert.Equal(t, "Community Member", update.Author)

	issue, _ := tr.ViewIssue("2")
	require.Len(t, issue.Updates, 2)
	assert.Equal(t, "Still full this morning", issue.Updates[1].Message)

	w = doJSON(r, http.MethodPost, "/api/issues/2/updates", map[string]string{"message": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message is required")

	w = doJSON(r, http.MethodPost, "/api/issues/nope/updates", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectionEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/issues/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":3,"active":2,"resolved":1,"highPriorityActive":1}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/issues/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalVotes":71`)

	w = doJSON(r, http.MethodGet, "/api/issues/recent?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pins []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pins))
	assert.Len(t, pins, 2)
}

func TestCreateIssue_ImageURL(t *testing.T) {
	base := func(imageURL string) map[string]any {
		return map[string]any{
			"title":       "Broken streetlight",
			"description": "Flickering all night",
			"category":    "streetlight",
			"priority":    "low",
			"status":      "reported",
			"location":    "Elm St",
			"reportedBy":  "Alex",
			"imageUrl":    imageURL,
		}
	}

	t.Run("empty means no photo", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := doJSON(r, http.MethodPost, "/api/issues", base(""))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var issue models.Issue
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
		assert.Nil(t, issue.ImageURL)
	})

	t.Run("valid url is kept", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := doJSON(r, http.MethodPost, "/api/issues", base("https://example.com/light.jpg"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var issue models.Issue
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
		require.NotNil(t, issue.ImageURL)
		assert.Equal(t, "https://example.com/light.jpg", *issue.ImageURL)
	})

	t.Run("malformed url", func(t *testing.T) {
		r, tr := newTestRouter(t)
		w := doJSON(r, http.MethodPost, "/api/issues", base("not a url"))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Image URL must be a valid URL")
		assert.Len(t, tr.Issues(), 3)
	})
}

// vanishingTracker finds an issue on view but loses it before the upvote lands.
type vanishingTracker struct {
	IssueTracker
	upvotes int
}

func (v *vanishingTracker) ViewIssue(id string) (models.Issue, bool) {
	return models.Issue{ID: id}, true
}

func (v *vanishingTracker) UpvoteIssue(context.Context, string) (models.Issue, bool, error) {
	v.upvotes++
	return models.Issue{}, false, nil
}

func TestHandleVoteOnIssue_MissedUpvoteIsNotRemembered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	vt := &vanishingTracker{}
	ic := NewIssueController(vt)
	r := gin.New()
	r.POST("/api/issues/:id/upvote", ic.HandleVoteOnIssue)

	for range 2 {
		w := doJSON(r, http.MethodPost, "/api/issues/1/upvote", nil, "X-Session-ID", "alice")
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	assert.Equal(t, 2, vt.upvotes, "second attempt reaches the tracker")
	assert.False(t, ic.hasVoted("alice", "1"))
}
