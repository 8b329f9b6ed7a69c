package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"docshub/api"
	"docshub/models"
	"docshub/services"
)

// recordingDispatcher stands in for the task queue in handler tests.
type recordingDispatcher struct {
	calls []services.TaskOptions
	names []string
}

func (d *recordingDispatcher) Enqueue(taskName string, payload any, opts services.TaskOptions) error {
	d.names = append(d.names, taskName)
	d.calls = append(d.calls, opts)
	return nil
}

type recordingRemover struct {
	calls [][]string
}

func (r *recordingRemover) RemoveDirs(paths []string) error {
	r.calls = append(r.calls, paths)
	return nil
}

func setupTestAPI(t *testing.T) (*gin.Engine, *recordingDispatcher, *recordingRemover) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	models.ConnectDatabase(filepath.Join(t.TempDir(), "test.db"))

	repo := services.NewGormRepository(models.DB)
	dispatcher := &recordingDispatcher{}
	remover := &recordingRemover{}
	Builds = services.NewBuildService(repo, dispatcher, "builds")
	Wiper = services.NewWipeService(repo, remover, t.TempDir())

	router := gin.New()
	router.Use(api.ZLogMiddleware(), gin.Recovery())
	router.POST("/projects", ProjectCreate)
	router.GET("/projects", ProjectList)
	router.GET("/projects/:id", ProjectGet)
	router.DELETE("/projects/:id", ProjectDelete)
	router.POST("/versions", VersionCreate)
	router.GET("/versions/:project_id", VersionList)
	router.DELETE("/versions/:project_slug/:version_slug", VersionDelete)
	router.POST("/builds", BuildCreate)
	router.GET("/builds", BuildList)
	router.GET("/builds/:id", BuildGet)
	return router, dispatcher, remover
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
