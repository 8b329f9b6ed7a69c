package controllers

import (
	"net/http"

	"github.com/docker/docker/builder/remotecontext/urlutil"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"docshub/api/errs"
	"docshub/api/types"
	"docshub/models"
	"docshub/utils"
)

func ProjectCreate(c *gin.Context) {
	var request types.ProjectRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}
	if !urlutil.IsGitURL(request.RepoURL) {
		c.Error(errs.ErrInvalidRepoURL)
		return
	}

	slug := utils.Slugify(request.Name, true)
	if err := models.DB.First(&models.Project{}, "slug = ?", slug).Error; err == nil {
		c.Error(errs.ErrProjectConflict)
		return
	}

	project := models.Project{
		Name:                request.Name,
		Slug:                slug,
		RepoURL:             request.RepoURL,
		DefaultVersion:      request.DefaultVersion,
		BuildQueue:          request.BuildQueue,
		ContainerTimeLimit:  request.ContainerTimeLimit,
		MaxConcurrentBuilds: request.MaxConcurrentBuilds,
		BuilderImage:        request.BuilderImage,
		Skip:                request.Skip,
	}
	models.DB.Create(&project)

	// every project starts with a buildable default
	models.DB.Create(&models.Version{
		ProjectID: project.Id,
		Slug:      models.LatestVersionSlug,
		Type:      models.VersionTypeBranch,
		Active:    true,
	})

	c.JSON(http.StatusCreated, types.Response{
		Status:  "success",
		Message: "created",
		Data:    project,
	})
}

func ProjectList(c *gin.Context) {
	var projects []models.Project

	models.DB.Find(&projects)
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   projects,
	})
}

func ProjectGet(c *gin.Context) {
	var project models.Project

	id := c.Params.ByName("id")
	if err := models.DB.First(&project, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   project,
	})
}

func ProjectDelete(c *gin.Context) {
	var project models.Project

	id := c.Params.ByName("id")
	if err := models.DB.First(&project, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	models.DB.Delete(&models.Version{}, "project_id = ?", project.Id)
	models.DB.Delete(&project)
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "deleted",
	})
}
