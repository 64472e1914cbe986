package routes

import (
	"github.com/badinlee/sister-fitness/controllers"
	"github.com/badinlee/sister-fitness/middlewares"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Food     *controllers.FoodController
	Realtime *controllers.RealtimeController
	Device   *controllers.DeviceController
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/profile", controllers.GetProfile)
		api.PUT("/profile", controllers.UpsertProfile)
		api.POST("/profile/apply-recommended", controllers.ApplyRecommendedTarget)

		api.POST("/entries", controllers.AppendEntry)
		api.GET("/entries", controllers.ListEntries)
		api.PUT("/entries/day", controllers.EditDay)

		api.GET("/dashboard", controllers.GetDashboard)
		api.GET("/leaderboard", controllers.GetLeaderboard)

		api.POST("/menu", controllers.SaveMenuItem)
		api.GET("/menu", controllers.ListMenuItems)
		api.DELETE("/menu/:id", controllers.DeleteMenuItem)
		api.POST("/menu/:id/log", controllers.LogMenuItem)

		api.GET("/food/lookup", deps.Food.Lookup)
		api.POST("/food/estimate-photo", deps.Food.EstimateFromPhoto)
		api.GET("/coach/recipes", deps.Food.SuggestRecipes)

		api.POST("/photos", controllers.UploadMealPhoto)

		api.GET("/report/weekly", controllers.GetWeeklyReport)
		api.POST("/report/weekly/email", controllers.EmailWeeklyReport)

		api.GET("/alerts", controllers.ListAlerts)
		api.GET("/ws/alerts", deps.Realtime.AlertsWS)
		api.POST("/devices", deps.Device.RegisterDevice)
	}

	return r
}
