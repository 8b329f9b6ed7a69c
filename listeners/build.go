package listeners

import (
	"context"
	"strconv"

	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/rs/zerolog/log"

	"docshub/models"
	"docshub/services"
)

// StartDockerEventListener watches for build containers exiting and flips
// their build rows to finished or failed.
func StartDockerEventListener(ctx context.Context) {
	d, err := services.NewDaemon()
	if err != nil {
		log.Error().Err(err).Msg("")
		return
	}
	defer d.Client.Close()

	eventFilters := filters.NewArgs()
	eventFilters.Add("type", "container")
	eventFilters.Add("event", "die")
	eventFilters.Add("event", "oom")

	msgChan, errChan := d.Client.Events(ctx, events.ListOptions{
		Filters: eventFilters,
	})
	for {
		select {
		case msg, ok := <-msgChan:
			if !ok {
				log.Info().Msg("Message channel closed")
				return
			}
			log.Debug().Msgf("%s %s\n", msg.Actor.ID, msg.Action)
			if msg.Actor.Attributes["label"] != services.ContainerLabel {
				continue
			}
			finishBuild(msg)

		case err, ok := <-errChan:
			if !ok {
				log.Info().Msg("Error channel closed")
				return
			}
			log.Error().Err(err).Msg("")
			return

		case <-ctx.Done():
			log.Info().Msg("Context Done signal received. Stopping event monitoring.")
			return
		}
	}
}

func finishBuild(msg events.Message) {
	buildID := msg.Actor.Attributes["build_id"]
	var build models.Build
	if err := models.DB.First(&build, "id = ?", buildID).Error; err != nil {
		log.Debug().
			Str("build", buildID).
			Msg("build not found")
		return
	}

	exitCode, _ := strconv.Atoi(msg.Actor.Attributes["exitCode"])
	if msg.Action == "oom" || exitCode != 0 {
		build.State = models.BuildStateFailed
		build.Error = "build container exited with code " + strconv.Itoa(exitCode)
	} else {
		build.State = models.BuildStateFinished
		build.Success = true
	}
	models.DB.Save(&build)
}
