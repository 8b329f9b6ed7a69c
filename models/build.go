package models

import "time"

const (
	BuildStateTriggered = "triggered"
	BuildStateBuilding  = "building"
	BuildStateFinished  = "finished"
	BuildStateFailed    = "failed"
)

type Build struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"not null;index"`
	VersionID uint      `json:"version_id" gorm:"not null"`
	State     string    `json:"state" gorm:"not null"`
	Commit    string    `json:"commit"`
	Error     string    `json:"error"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project Project `json:"project" gorm:"foreignKey:ProjectID"`
	Version Version `json:"version" gorm:"foreignKey:VersionID"`
}
