package routes

import (
	"fixit-be/controllers"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes. reportMiddleware runs before issue
// creation only.
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, reportMiddleware ...gin.HandlerFunc) {
	issue := r.Group("/api/issues")
	{
		create := append(append([]gin.HandlerFunc{}, reportMiddleware...), ic.CreateIssue)
		issue.POST("", create...)
		issue.GET("", ic.GetAllIssues)
		issue.GET("/stats", ic.GetIssueStats)
		issue.GET("/analytics", ic.GetIssueAnalytics)
		issue.GET("/recent", ic.RecentIssues)
		issue.GET("/:id", ic.GetIssue)
		issue.POST("/:id/upvote", ic.HandleVoteOnIssue)
		issue.POST("/:id/updates", ic.AddIssueUpdate)
	}
}
