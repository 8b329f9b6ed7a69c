package types

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ProjectRequest struct {
	Name                string `json:"name" binding:"required"`
	RepoURL             string `json:"repo_url" binding:"required"`
	DefaultVersion      string `json:"default_version"`
	BuildQueue          string `json:"build_queue"`
	ContainerTimeLimit  string `json:"container_time_limit"`
	MaxConcurrentBuilds int    `json:"max_concurrent_builds"`
	BuilderImage        string `json:"builder_image"`
	Skip                bool   `json:"skip"`
}

type VersionRequest struct {
	ProjectID uint   `json:"project_id" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Type      string `json:"type"`
	Active    bool   `json:"active"`
}

type BuildRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	VersionSlug string `json:"version_slug"`
	Commit      string `json:"commit"`
	Force       bool   `json:"force"`
}
