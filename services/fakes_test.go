package services

import (
	"errors"

	"docshub/models"
)

// fakeRepo is an in-memory Repository recording build writes.
type fakeRepo struct {
	projects       map[string]*models.Project
	versions       map[uint]map[string]*models.Version
	building       map[uint]int64
	features       map[uint]map[string]bool
	builds         []*models.Build
	createBuildErr error
	nextBuildID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		projects: make(map[string]*models.Project),
		versions: make(map[uint]map[string]*models.Version),
		building: make(map[uint]int64),
		features: make(map[uint]map[string]bool),
	}
}

func (r *fakeRepo) addProject(p *models.Project) {
	r.projects[p.Slug] = p
}

func (r *fakeRepo) addVersion(v *models.Version) {
	if r.versions[v.ProjectID] == nil {
		r.versions[v.ProjectID] = make(map[string]*models.Version)
	}
	r.versions[v.ProjectID][v.Slug] = v
}

func (r *fakeRepo) enableFeature(projectID uint, featureID string) {
	if r.features[projectID] == nil {
		r.features[projectID] = make(map[string]bool)
	}
	r.features[projectID][featureID] = true
}

func (r *fakeRepo) FindProjectBySlug(slug string) (*models.Project, error) {
	if p, ok := r.projects[slug]; ok {
		return p, nil
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) FindVersion(projectID uint, slug string) (*models.Version, error) {
	if v, ok := r.versions[projectID][slug]; ok {
		return v, nil
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) CountBuilding(projectID uint) (int64, error) {
	return r.building[projectID], nil
}

func (r *fakeRepo) HasFeature(projectID uint, featureID string) (bool, error) {
	return r.features[projectID][featureID], nil
}

func (r *fakeRepo) CreateBuild(build *models.Build) error {
	if r.createBuildErr != nil {
		return r.createBuildErr
	}
	r.nextBuildID++
	build.ID = r.nextBuildID
	r.builds = append(r.builds, build)
	return nil
}

func (r *fakeRepo) SaveBuild(build *models.Build) error {
	return nil
}

// fakeDispatcher records every enqueue so tests can assert on call shape.
type enqueueCall struct {
	taskName string
	payload  any
	opts     TaskOptions
}

type fakeDispatcher struct {
	calls      []enqueueCall
	enqueueErr error
}

func (d *fakeDispatcher) Enqueue(taskName string, payload any, opts TaskOptions) error {
	d.calls = append(d.calls, enqueueCall{taskName: taskName, payload: payload, opts: opts})
	return d.enqueueErr
}

// fakeRemover records RemoveDirs calls instead of touching the filesystem.
type fakeRemover struct {
	calls [][]string
}

func (r *fakeRemover) RemoveDirs(paths []string) error {
	r.calls = append(r.calls, paths)
	return nil
}
