package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"docshub/models"
)

const maxConcurrencyMessage = "Concurrency limit reached (%d), retrying in 5 minutes."

// ConcurrencyErrorMessage is the error recorded on a build held back by the
// concurrent-build limit.
func ConcurrencyErrorMessage(limit int) string {
	return fmt.Sprintf(maxConcurrencyMessage, limit)
}

type BuildService struct {
	Repo         Repository
	Dispatcher   Dispatcher
	DefaultQueue string
}

func NewBuildService(repo Repository, dispatcher Dispatcher, defaultQueue string) *BuildService {
	return &BuildService{
		Repo:         repo,
		Dispatcher:   dispatcher,
		DefaultQueue: defaultQueue,
	}
}

// TriggerBuild decides whether a documentation build should run for the
// project and hands it to the task queue with the queue, time limits,
// priority and retry policy it worked out. When version is nil the
// project's default version is resolved, falling back to "latest".
//
// It never fails the caller: anomalies degrade to fallback values or are
// recorded on the build row, and the result is always the (build, version)
// pair that was dispatched, or (nil, nil) when nothing was.
func (s *BuildService) TriggerBuild(project *models.Project, version *models.Version, commit string, force bool) (*models.Build, *models.Version) {
	if project.Skip {
		log.Debug().
			Str("project", project.Slug).
			Msg("build skipped by project flag")
		return nil, nil
	}

	if version == nil {
		version = s.resolveDefaultVersion(project)
		if version == nil {
			log.Error().
				Str("project", project.Slug).
				Msg("no version to build")
			return nil, nil
		}
	}

	opts := TaskOptions{
		Queue:         s.DefaultQueue,
		TimeLimit:     DefaultTimeLimit,
		SoftTimeLimit: DefaultSoftTimeLimit,
		Priority:      PriorityHigh,
	}
	if version.IsExternal() {
		opts.Priority = PriorityLow
	} else if project.IsTranslation() {
		opts.Priority = PriorityMedium
	}
	if limit, ok := parseTimeLimit(project.ContainerTimeLimit); ok {
		opts.TimeLimit = limit
		opts.SoftTimeLimit = limit
	}
	if opts.SoftTimeLimit > opts.TimeLimit {
		opts.SoftTimeLimit = opts.TimeLimit
	}
	if project.BuildQueue != "" {
		opts.Queue = project.BuildQueue
	}

	build := &models.Build{
		ProjectID: project.Id,
		VersionID: version.ID,
		State:     models.BuildStateTriggered,
		Commit:    commit,
	}

	if !force && s.concurrencyLimitReached(project) {
		build.Error = ConcurrencyErrorMessage(project.MaxConcurrentBuilds)
		opts.Countdown = ConcurrencyRetryDelay
		opts.MaxRetries = ConcurrencyMaxRetries
		log.Warn().
			Str("project", project.Slug).
			Int("limit", project.MaxConcurrentBuilds).
			Msg("concurrency limit reached, delaying build")
	}

	if err := s.Repo.CreateBuild(build); err != nil {
		log.Error().
			Err(err).
			Str("project", project.Slug).
			Str("version", version.Slug).
			Msg("failed to create build record")
		return nil, nil
	}

	args := UpdateDocsArgs{
		VersionID: version.ID,
		Record:    true,
		Force:     force,
		BuildID:   build.ID,
		Commit:    commit,
	}
	if err := s.Dispatcher.Enqueue(TaskUpdateDocs, args, opts); err != nil {
		build.Error = "failed to enqueue build task"
		if err := s.Repo.SaveBuild(build); err != nil {
			log.Error().Err(err).Msg("failed to record enqueue failure")
		}
	}
	return build, version
}

// resolveDefaultVersion looks up the project's configured default version,
// falling back to "latest" when the configured one does not exist.
func (s *BuildService) resolveDefaultVersion(project *models.Project) *models.Version {
	slug := project.DefaultVersionSlug()
	if version, err := s.Repo.FindVersion(project.Id, slug); err == nil {
		return version
	}
	if slug == models.LatestVersionSlug {
		return nil
	}
	log.Debug().
		Str("project", project.Slug).
		Str("default_version", slug).
		Msg("configured default version missing, falling back to latest")
	version, err := s.Repo.FindVersion(project.Id, models.LatestVersionSlug)
	if err != nil {
		return nil
	}
	return version
}

// concurrencyLimitReached is a best-effort read-then-act check: two
// near-simultaneous triggers can both pass it, and a slight overshoot is
// accepted instead of locking.
func (s *BuildService) concurrencyLimitReached(project *models.Project) bool {
	if project.MaxConcurrentBuilds <= 0 {
		return false
	}
	limited, err := s.Repo.HasFeature(project.Id, models.FeatureLimitConcurrentBuilds)
	if err != nil || !limited {
		return false
	}
	building, err := s.Repo.CountBuilding(project.Id)
	if err != nil {
		return false
	}
	return building >= int64(project.MaxConcurrentBuilds)
}

// parseTimeLimit interprets a project's container time limit. Only plain
// numeric values (seconds) are supported; they round down. Duration strings
// like "200s" fall back to the defaults.
func parseTimeLimit(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds <= 0 {
		log.Warn().
			Str("container_time_limit", raw).
			Msg("unsupported container time limit, using defaults")
		return 0, false
	}
	return int(math.Floor(seconds)), true
}
