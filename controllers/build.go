package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"docshub/api/errs"
	"docshub/api/types"
	"docshub/models"
	"docshub/services"
)

// Builds decides and dispatches documentation builds; wired in main.
var Builds *services.BuildService

func BuildCreate(c *gin.Context) {
	var request types.BuildRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	var project models.Project
	if err := models.DB.First(&project, request.ProjectID).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	var version *models.Version
	if request.VersionSlug != "" {
		var v models.Version
		if err := models.DB.First(&v, "project_id = ? AND slug = ?", project.Id, request.VersionSlug).Error; err != nil {
			c.Error(errs.ErrVersionNotFound)
			return
		}
		version = &v
	}

	build, used := Builds.TriggerBuild(&project, version, request.Commit, request.Force)
	if build == nil {
		c.JSON(http.StatusOK, types.Response{
			Status:  "success",
			Message: "skipped",
		})
		return
	}

	c.JSON(http.StatusAccepted, types.Response{
		Status:  "success",
		Message: "triggered",
		Data: map[string]any{
			"build":   build,
			"version": used,
		},
	})
}

func BuildList(c *gin.Context) {
	var builds []models.Build

	models.DB.Preload("Project").Preload("Version").Find(&builds)
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   builds,
	})
}

func BuildGet(c *gin.Context) {
	var build models.Build

	id := c.Params.ByName("id")
	if err := models.DB.Preload("Project").Preload("Version").First(&build, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrBuildNotFound)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   build,
	})
}

func BuildDelete(c *gin.Context) {
	var build models.Build

	id := c.Params.ByName("id")
	if err := models.DB.First(&build, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrBuildNotFound)
		return
	}

	// cleanup the related stuff like container
	if err := services.BuildCleanup(&build); err != nil {
		c.Error(err)
		return
	}

	models.DB.Delete(&build)
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "deleted",
	})
}
