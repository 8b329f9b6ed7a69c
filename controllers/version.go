package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"docshub/api/errs"
	"docshub/api/types"
	"docshub/models"
	"docshub/services"
	"docshub/utils"
)

// Wiper removes version artifact directories; wired in main.
var Wiper *services.WipeService

func VersionCreate(c *gin.Context) {
	var request types.VersionRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	if err := models.DB.First(&models.Project{}, request.ProjectID).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	slug := utils.Slugify(request.Slug, true)
	if err := models.DB.First(&models.Version{}, "project_id = ? AND slug = ?", request.ProjectID, slug).Error; err == nil {
		c.Error(errs.ErrVersionConflict)
		return
	}

	versionType := request.Type
	if versionType == "" {
		versionType = models.VersionTypeUnknown
	}
	version := models.Version{
		ProjectID: request.ProjectID,
		Slug:      slug,
		Type:      versionType,
		Active:    request.Active,
	}

	models.DB.Create(&version)
	c.JSON(http.StatusCreated, types.Response{
		Status:  "success",
		Message: "created",
		Data:    version,
	})
}

func VersionList(c *gin.Context) {
	var versions []models.Version

	projectID := c.Params.ByName("project_id")
	if err := models.DB.First(&models.Project{}, projectID).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	models.DB.Find(&versions, "project_id = ?", projectID)
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   versions,
	})
}

// VersionDelete wipes the version's artifact directories and then removes
// the row itself.
func VersionDelete(c *gin.Context) {
	projectSlug := c.Params.ByName("project_slug")
	versionSlug := c.Params.ByName("version_slug")

	if err := Wiper.WipeVersionViaSlugs(versionSlug, projectSlug); err != nil {
		c.Error(err)
		return
	}

	var project models.Project
	if err := models.DB.First(&project, "slug = ?", projectSlug).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	models.DB.Delete(&models.Version{}, "project_id = ? AND slug = ?", project.Id, versionSlug)

	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "deleted",
	})
}
