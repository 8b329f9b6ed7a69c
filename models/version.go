package models

import "time"

const (
	VersionTypeBranch   = "branch"
	VersionTypeTag      = "tag"
	VersionTypeExternal = "external"
	VersionTypeUnknown  = "unknown"
)

// Version is a buildable ref of a project. Slugs are unique per project
// only: two projects may both have a "v1.0" version.
type Version struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"not null;uniqueIndex:idx_versions_project_slug"`
	Slug      string    `json:"slug" gorm:"not null;uniqueIndex:idx_versions_project_slug"`
	Type      string    `json:"type" gorm:"not null"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project Project `json:"project" gorm:"foreignKey:ProjectID"`
}

// IsExternal reports whether the version is a pull-request preview rather
// than a tracked branch or tag.
func (v *Version) IsExternal() bool {
	return v.Type == VersionTypeExternal
}
