package models

import (
	"path/filepath"
	"time"
)

// LatestVersionSlug is the version slug every project falls back to when no
// explicit default version is configured, or when the configured one does
// not exist.
const LatestVersionSlug = "latest"

type Project struct {
	Id                    uint      `gorm:"primaryKey" json:"id"`
	Name                  string    `json:"name"`
	Slug                  string    `gorm:"uniqueIndex" json:"slug"`
	RepoURL               string    `json:"repo_url"`
	DefaultVersion        string    `json:"default_version"`
	Skip                  bool      `json:"skip"`
	BuildQueue            string    `json:"build_queue"`
	ContainerTimeLimit    string    `json:"container_time_limit"`
	MaxConcurrentBuilds   int       `json:"max_concurrent_builds"`
	MainLanguageProjectId *uint     `gorm:"index" json:"main_language_project_id"`
	BuilderImage          string    `json:"builder_image"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// IsTranslation reports whether the project is a localized variant of
// another project.
func (p *Project) IsTranslation() bool {
	return p.MainLanguageProjectId != nil
}

// DefaultVersionSlug returns the configured default version slug, or the
// well-known fallback when none is configured.
func (p *Project) DefaultVersionSlug() string {
	if p.DefaultVersion != "" {
		return p.DefaultVersion
	}
	return LatestVersionSlug
}

// DocPath is the project's directory under the shared document root. All
// build artifacts (checkouts, envs, conda envs, caches) live below it.
func (p *Project) DocPath(docRoot string) string {
	return filepath.Join(docRoot, p.Slug)
}
