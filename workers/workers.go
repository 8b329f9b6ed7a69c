package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"docshub/config"
	"docshub/listeners"
	"docshub/models"
	"docshub/services"
	"docshub/tasks"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()
	models.ConnectDatabase(cfg.DatabasePath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listeners.StartDockerEventListener(ctx)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				tasks.QueueHigh:   6,
				tasks.QueueMedium: 3,
				tasks.QueueLow:    1,
			},
		},
	)

	handlers := &tasks.Handlers{
		DocRoot:        cfg.DocRoot,
		DefaultBuilder: cfg.DefaultBuilder,
	}
	mux := asynq.NewServeMux()
	mux.HandleFunc(services.TaskUpdateDocs, handlers.HandleUpdateDocsTask)

	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("failed to start workers")
	}
}
