package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"docshub/api"
	"docshub/config"
	"docshub/controllers"
	"docshub/models"
	"docshub/services"
	"docshub/tasks"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	gin.DefaultWriter = zerolog.ConsoleWriter{Out: os.Stdout}

	cfg := config.Load()
	models.ConnectDatabase(cfg.DatabasePath)

	repo := services.NewGormRepository(models.DB)
	dispatcher := tasks.NewDispatcher(cfg.RedisAddr, cfg.DefaultQueue)
	defer dispatcher.Close()
	controllers.Builds = services.NewBuildService(repo, dispatcher, cfg.DefaultQueue)
	controllers.Wiper = services.NewWipeService(repo, services.OsRemover{}, cfg.DocRoot)

	router := gin.New()
	router.Use(api.ZLogMiddleware(), gin.Recovery())
	registerRoutes(router)

	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("app failed to start")
	}
}

func registerRoutes(router *gin.Engine) {
	// Project
	router.POST("/projects", controllers.ProjectCreate)
	router.GET("/projects", controllers.ProjectList)
	router.GET("/projects/:id", controllers.ProjectGet)
	router.DELETE("/projects/:id", controllers.ProjectDelete)

	// Version
	router.POST("/versions", controllers.VersionCreate)
	router.GET("/versions/:project_id", controllers.VersionList)
	router.DELETE("/versions/:project_slug/:version_slug", controllers.VersionDelete)

	// Build
	router.POST("/builds", controllers.BuildCreate)
	router.GET("/builds", controllers.BuildList)
	router.GET("/builds/:id", controllers.BuildGet)
	router.DELETE("/builds/:id", controllers.BuildDelete)
}
