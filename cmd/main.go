package main

import (
	"github.com/badinlee/sister-fitness/config"
	"github.com/badinlee/sister-fitness/controllers"
	"github.com/badinlee/sister-fitness/routes"
	"github.com/badinlee/sister-fitness/services"
	"github.com/badinlee/sister-fitness/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Log.Fatalf("load config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	if err := config.InitDB(cfg); err != nil {
		utils.Log.Fatalf("init database: %v", err)
	}
	if err := utils.InitS3(cfg.AWSRegion); err != nil {
		utils.Log.Fatalf("init S3: %v", err)
	}
	if err := utils.InitMailer(cfg.AWSRegion); err != nil {
		utils.Log.Fatalf("init mailer: %v", err)
	}

	coach := services.NewCoachService()
	lookup := services.NewFoodLookupService(coach)
	vision, err := services.NewVisionService()
	if err != nil {
		utils.Log.Fatalf("init vision service: %v", err)
	}

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		utils.Log.Fatalf("init push service: %v", err)
	}
	services.InitAlertDeps(config.DB, hub, push)

	r := routes.SetupRouter(routes.Deps{
		Food:     controllers.NewFoodController(lookup, vision, coach),
		Realtime: controllers.NewRealtimeController(hub),
		Device:   controllers.NewDeviceController(push),
	})

	utils.Log.Infof("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.Log.Fatalf("run server: %v", err)
	}
}
