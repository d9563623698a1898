package routes

import (
	"fixit-be/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine, uc *controllers.UserController) {
	me := r.Group("/api/me")
	{
		me.GET("", uc.GetMe)
		me.GET("/engagement", uc.GetEngagement)
		me.POST("/actions/:action", uc.RecordAction)
		me.POST("/hours", uc.LogVolunteerHours)
	}
	r.POST("/api/events/:id/register", uc.RegisterForEvent)
}
