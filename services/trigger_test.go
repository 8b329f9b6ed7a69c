package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshub/models"
)

const testQueue = "builds"

func newTestService() (*BuildService, *fakeRepo, *fakeDispatcher) {
	repo := newFakeRepo()
	dispatcher := &fakeDispatcher{}
	return NewBuildService(repo, dispatcher, testQueue), repo, dispatcher
}

func testProject(id uint, slug string) *models.Project {
	return &models.Project{Id: id, Name: slug, Slug: slug}
}

func TestTriggerBuildSkippedProject(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	project := testProject(1, "skipped")
	project.Skip = true
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "latest"}

	build, used := svc.TriggerBuild(project, version, "", false)

	assert.Nil(t, build)
	assert.Nil(t, used)
	assert.Empty(t, dispatcher.calls)
	assert.Empty(t, repo.builds)
}

func TestTriggerBuildResolvesConfiguredDefaultVersion(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	project := testProject(1, "proj")
	project.DefaultVersion = "test-default-version"
	repo.addVersion(&models.Version{ID: 11, ProjectID: 1, Slug: "test-default-version", Active: true})
	repo.addVersion(&models.Version{ID: 12, ProjectID: 1, Slug: models.LatestVersionSlug, Active: true})

	build, used := svc.TriggerBuild(project, nil, "", false)

	require.NotNil(t, build)
	require.NotNil(t, used)
	assert.Equal(t, "test-default-version", used.Slug)

	require.Len(t, dispatcher.calls, 1)
	call := dispatcher.calls[0]
	assert.Equal(t, TaskUpdateDocs, call.taskName)
	args, ok := call.payload.(UpdateDocsArgs)
	require.True(t, ok)
	assert.Equal(t, uint(11), args.VersionID)
	assert.True(t, args.Record)
	assert.False(t, args.Force)
	assert.Equal(t, build.ID, args.BuildID)
	assert.Empty(t, args.Commit)
}

func TestTriggerBuildFallsBackToLatest(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	project := testProject(1, "proj")
	project.DefaultVersion = "gone"
	repo.addVersion(&models.Version{ID: 12, ProjectID: 1, Slug: models.LatestVersionSlug, Active: true})

	build, used := svc.TriggerBuild(project, nil, "", false)

	require.NotNil(t, build)
	require.NotNil(t, used)
	assert.Equal(t, models.LatestVersionSlug, used.Slug)
	require.Len(t, dispatcher.calls, 1)
}

func TestTriggerBuildNoDefaultConfigured(t *testing.T) {
	svc, repo, _ := newTestService()
	project := testProject(1, "proj")
	repo.addVersion(&models.Version{ID: 12, ProjectID: 1, Slug: models.LatestVersionSlug, Active: true})

	build, used := svc.TriggerBuild(project, nil, "", false)

	require.NotNil(t, build)
	require.NotNil(t, used)
	assert.Equal(t, models.LatestVersionSlug, used.Slug)
}

func TestTriggerBuildNoVersionAtAll(t *testing.T) {
	svc, _, dispatcher := newTestService()
	project := testProject(1, "proj")

	build, used := svc.TriggerBuild(project, nil, "", false)

	assert.Nil(t, build)
	assert.Nil(t, used)
	assert.Empty(t, dispatcher.calls)
}

func TestTriggerBuildPriorities(t *testing.T) {
	mainID := uint(99)

	tests := []struct {
		name        string
		versionType string
		translation bool
		want        int
	}{
		{"default is high", models.VersionTypeBranch, false, PriorityHigh},
		{"translation is medium", models.VersionTypeBranch, true, PriorityMedium},
		{"external is low", models.VersionTypeExternal, false, PriorityLow},
		{"external beats translation", models.VersionTypeExternal, true, PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, dispatcher := newTestService()
			project := testProject(1, "proj")
			if tt.translation {
				project.MainLanguageProjectId = &mainID
			}
			version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1", Type: tt.versionType}

			svc.TriggerBuild(project, version, "", false)

			require.Len(t, dispatcher.calls, 1)
			assert.Equal(t, tt.want, dispatcher.calls[0].opts.Priority)
		})
	}
}

func TestTriggerBuildTimeLimits(t *testing.T) {
	tests := []struct {
		name     string
		limit    string
		wantHard int
		wantSoft int
	}{
		{"unset uses defaults", "", 720, 600},
		{"integer used directly", "3", 3, 3},
		{"fraction rounds down", "59.9", 59, 59},
		{"duration string falls back", "200s", 720, 600},
		{"garbage falls back", "soon", 720, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, dispatcher := newTestService()
			project := testProject(1, "proj")
			project.ContainerTimeLimit = tt.limit
			version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

			svc.TriggerBuild(project, version, "", false)

			require.Len(t, dispatcher.calls, 1)
			opts := dispatcher.calls[0].opts
			assert.Equal(t, tt.wantHard, opts.TimeLimit)
			assert.Equal(t, tt.wantSoft, opts.SoftTimeLimit)
		})
	}
}

func TestTriggerBuildQueueSelection(t *testing.T) {
	svc, _, dispatcher := newTestService()
	project := testProject(1, "proj")
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

	svc.TriggerBuild(project, version, "", false)
	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, testQueue, dispatcher.calls[0].opts.Queue)

	project.BuildQueue = "build03"
	svc.TriggerBuild(project, version, "", false)
	require.Len(t, dispatcher.calls, 2)
	assert.Equal(t, "build03", dispatcher.calls[1].opts.Queue)
}

func TestTriggerBuildConcurrencyLimitReached(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	project := testProject(1, "proj")
	project.MaxConcurrentBuilds = 2
	repo.enableFeature(1, models.FeatureLimitConcurrentBuilds)
	repo.building[1] = 2
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

	build, used := svc.TriggerBuild(project, version, "", false)

	require.NotNil(t, build)
	require.NotNil(t, used)
	assert.Equal(t, ConcurrencyErrorMessage(2), build.Error)

	require.Len(t, dispatcher.calls, 1)
	opts := dispatcher.calls[0].opts
	assert.Equal(t, ConcurrencyRetryDelay, opts.Countdown)
	assert.Equal(t, ConcurrencyMaxRetries, opts.MaxRetries)
	assert.Equal(t, 720, opts.TimeLimit)
	assert.Equal(t, 600, opts.SoftTimeLimit)
}

func TestTriggerBuildConcurrencyBelowLimit(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	project := testProject(1, "proj")
	project.MaxConcurrentBuilds = 2
	repo.enableFeature(1, models.FeatureLimitConcurrentBuilds)
	repo.building[1] = 1
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

	build, _ := svc.TriggerBuild(project, version, "", false)

	require.NotNil(t, build)
	assert.Empty(t, build.Error)
	require.Len(t, dispatcher.calls, 1)
	assert.Zero(t, dispatcher.calls[0].opts.Countdown)
	assert.Zero(t, dispatcher.calls[0].opts.MaxRetries)
}

func TestTriggerBuildConcurrencyFeatureDisabled(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	project := testProject(1, "proj")
	project.MaxConcurrentBuilds = 2
	repo.building[1] = 5
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

	build, _ := svc.TriggerBuild(project, version, "", false)

	require.NotNil(t, build)
	assert.Empty(t, build.Error)
	require.Len(t, dispatcher.calls, 1)
	assert.Zero(t, dispatcher.calls[0].opts.Countdown)
}

func TestTriggerBuildForceBypassesThrottle(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	project := testProject(1, "proj")
	project.MaxConcurrentBuilds = 2
	repo.enableFeature(1, models.FeatureLimitConcurrentBuilds)
	repo.building[1] = 2
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

	build, _ := svc.TriggerBuild(project, version, "abc123", true)

	require.NotNil(t, build)
	assert.Empty(t, build.Error)
	require.Len(t, dispatcher.calls, 1)
	assert.Zero(t, dispatcher.calls[0].opts.Countdown)

	args := dispatcher.calls[0].payload.(UpdateDocsArgs)
	assert.True(t, args.Force)
	assert.Equal(t, "abc123", args.Commit)
}

func TestTriggerBuildCreateFailureDegrades(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	repo.createBuildErr = assert.AnError
	project := testProject(1, "proj")
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

	build, used := svc.TriggerBuild(project, version, "", false)

	assert.Nil(t, build)
	assert.Nil(t, used)
	assert.Empty(t, dispatcher.calls)
}

func TestTriggerBuildEnqueueFailureRecorded(t *testing.T) {
	svc, _, dispatcher := newTestService()
	dispatcher.enqueueErr = assert.AnError
	project := testProject(1, "proj")
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

	build, used := svc.TriggerBuild(project, version, "", false)

	require.NotNil(t, build)
	require.NotNil(t, used)
	assert.Equal(t, "failed to enqueue build task", build.Error)
}

func TestTriggerBuildStateAndCommit(t *testing.T) {
	svc, repo, _ := newTestService()
	project := testProject(1, "proj")
	version := &models.Version{ID: 10, ProjectID: 1, Slug: "v1"}

	build, _ := svc.TriggerBuild(project, version, "deadbeef", false)

	require.NotNil(t, build)
	assert.Equal(t, models.BuildStateTriggered, build.State)
	assert.Equal(t, "deadbeef", build.Commit)
	assert.Empty(t, build.Error)
	require.Len(t, repo.builds, 1)
}
