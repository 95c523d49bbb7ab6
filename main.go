package main

import (
	"github.com/OliveiraAntonioFernando/Ultramed-Project/CronJobs"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/FirebaseMessaging"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Models"
	"github.com/OliveiraAntonioFernando/Ultramed-Project/Routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	Models.ConnectDataBase()
	FirebaseMessaging.Setup()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://ultramed.ddns.net", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	Routes.ConfigRoutes(router)
	workers := CronJobs.NewClinicWorkers(Models.DB)
	scheduler := workers.StartCron()
	_ = scheduler
	router.Run(":3005")
}
