package models

import "time"

// FeatureLimitConcurrentBuilds gates the admission control on concurrent
// builds for the projects it is attached to.
const FeatureLimitConcurrentBuilds = "limit_concurrent_builds"

// Feature associates a named capability with a set of projects.
type Feature struct {
	Id        uint      `gorm:"primaryKey" json:"id"`
	FeatureID string    `gorm:"uniqueIndex" json:"feature_id"`
	Projects  []Project `gorm:"many2many:project_features" json:"projects"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
