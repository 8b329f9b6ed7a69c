package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"docshub/models"
	"docshub/services"
)

// Weighted queues the worker consumes. The dispatcher routes the default
// queue onto one of these by priority; project-specific custom queues are
// served by dedicated workers instead.
const (
	QueueHigh   = "builds-high"
	QueueMedium = "builds-medium"
	QueueLow    = "builds-low"
)

// AsynqDispatcher submits tasks to the redis-backed queue.
type AsynqDispatcher struct {
	client       *asynq.Client
	defaultQueue string
}

func NewDispatcher(redisAddr, defaultQueue string) *AsynqDispatcher {
	return &AsynqDispatcher{
		client:       asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		defaultQueue: defaultQueue,
	}
}

func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

// Enqueue maps TaskOptions onto asynq: queue, hard time limit, retry budget
// and countdown delay. asynq has no per-task priority, so tasks bound for
// the default queue are routed to a weighted queue matching their tier;
// a custom queue always wins over that routing.
func (d *AsynqDispatcher) Enqueue(taskName string, payload any, opts services.TaskOptions) error {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().
			Err(err).
			Str("type", taskName).
			Msg("failed to encode task payload")
		return err
	}
	task := asynq.NewTask(taskName, data)

	queue := opts.Queue
	if queue == "" || queue == d.defaultQueue {
		queue = priorityQueue(opts.Priority)
	}

	aopts := []asynq.Option{
		asynq.TaskID(uuid.NewString()),
		asynq.Queue(queue),
		asynq.MaxRetry(opts.MaxRetries),
	}
	if opts.TimeLimit > 0 {
		aopts = append(aopts, asynq.Timeout(time.Duration(opts.TimeLimit)*time.Second))
	}
	if opts.Countdown > 0 {
		aopts = append(aopts, asynq.ProcessIn(opts.Countdown))
	}

	if _, err := d.client.Enqueue(task, aopts...); err != nil {
		log.Error().
			Err(err).
			Str("type", taskName).
			Str("queue", queue).
			Msg("failed to enqueue task")
		return err
	}
	return nil
}

func priorityQueue(priority int) string {
	switch {
	case priority >= services.PriorityHigh:
		return QueueHigh
	case priority >= services.PriorityMedium:
		return QueueMedium
	default:
		return QueueLow
	}
}

// Handlers processes queued tasks on the worker.
type Handlers struct {
	DocRoot        string
	DefaultBuilder string
}

// HandleUpdateDocsTask runs a documentation build: it marks the build row
// as building and starts the builder container with the project checkout
// mounted. The docker event listener transitions the row once the
// container exits.
//
// A build still over its project's concurrency limit is returned as an
// error so asynq retries it within the MaxRetry budget it was enqueued
// with.
func (h *Handlers) HandleUpdateDocsTask(ctx context.Context, t *asynq.Task) error {
	var args services.UpdateDocsArgs
	if err := json.Unmarshal(t.Payload(), &args); err != nil {
		return err
	}

	var build models.Build
	if err := models.DB.Preload("Project").Preload("Version").First(&build, "id = ?", args.BuildID).Error; err != nil {
		return err
	}
	project := build.Project

	if !args.Force && concurrencyStillExceeded(&project) {
		return fmt.Errorf("project %s still at concurrency limit", project.Slug)
	}

	d, err := services.NewDaemon()
	if err != nil {
		return err
	}
	defer d.Client.Close()

	image := project.BuilderImage
	if image == "" {
		image = h.DefaultBuilder
	}
	docPath := project.DocPath(h.DocRoot)

	contID, err := d.ContainerCreate(services.BuildContainerName(&build), &container.Config{
		Image: image,
		Cmd:   []string{"build", "--version", build.Version.Slug, "--commit", args.Commit},
		Env: []string{
			"DOCSHUB_PROJECT=" + project.Slug,
			"DOCSHUB_VERSION=" + build.Version.Slug,
		},
		Labels: map[string]string{
			"label":    services.ContainerLabel,
			"build_id": strconv.FormatUint(uint64(build.ID), 10),
		},
	}, &container.HostConfig{
		Binds: []string{docPath + ":/docs"},
	})
	if err != nil {
		return failBuild(&build, err)
	}

	if err := d.ContainerStart(contID); err != nil {
		return failBuild(&build, err)
	}

	build.State = models.BuildStateBuilding
	build.Error = ""
	models.DB.Save(&build)
	return nil
}

func failBuild(build *models.Build, cause error) error {
	build.State = models.BuildStateFailed
	build.Error = cause.Error()
	models.DB.Save(build)
	return cause
}

func concurrencyStillExceeded(project *models.Project) bool {
	if project.MaxConcurrentBuilds <= 0 {
		return false
	}
	var limited int64
	models.DB.Model(&models.Feature{}).
		Joins("JOIN project_features ON project_features.feature_id = features.id").
		Where("features.feature_id = ? AND project_features.project_id = ?", models.FeatureLimitConcurrentBuilds, project.Id).
		Count(&limited)
	if limited == 0 {
		return false
	}
	var building int64
	models.DB.Model(&models.Build{}).
		Where("project_id = ? AND state = ?", project.Id, models.BuildStateBuilding).
		Count(&building)
	return building >= int64(project.MaxConcurrentBuilds)
}
