package services

import (
	"gorm.io/gorm"

	"docshub/models"
)

// Repository is the persistence surface the dispatch and wipe logic needs.
// Keeping it narrow lets tests stand in a recorder instead of a database.
type Repository interface {
	FindProjectBySlug(slug string) (*models.Project, error)
	FindVersion(projectID uint, slug string) (*models.Version, error)
	CountBuilding(projectID uint) (int64, error)
	HasFeature(projectID uint, featureID string) (bool, error)
	CreateBuild(build *models.Build) error
	SaveBuild(build *models.Build) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindProjectBySlug(slug string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormRepository) FindVersion(projectID uint, slug string) (*models.Version, error) {
	var version models.Version
	if err := r.db.First(&version, "project_id = ? AND slug = ?", projectID, slug).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *GormRepository) CountBuilding(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Build{}).
		Where("project_id = ? AND state = ?", projectID, models.BuildStateBuilding).
		Count(&count).Error
	return count, err
}

func (r *GormRepository) HasFeature(projectID uint, featureID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Feature{}).
		Joins("JOIN project_features ON project_features.feature_id = features.id").
		Where("features.feature_id = ? AND project_features.project_id = ?", featureID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepository) CreateBuild(build *models.Build) error {
	return r.db.Create(build).Error
}

func (r *GormRepository) SaveBuild(build *models.Build) error {
	return r.db.Save(build).Error
}
