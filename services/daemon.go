package services

import (
	"context"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/rs/zerolog/log"
)

// ContainerLabel marks every container this service owns; the event
// listener filters on it.
const ContainerLabel = "docshub"

// Daemon wraps the docker client the build worker runs documentation
// builds with.
type Daemon struct {
	Client *client.Client
}

func NewDaemon() (*Daemon, error) {
	c, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		log.Error().
			Err(err).
			Msg("failed to connect to docker daemon")
		return nil, err
	}
	return &Daemon{Client: c}, nil
}

func (d *Daemon) ContainerCreate(containerName string, config *container.Config, hostConfig *container.HostConfig) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	c, err := d.Client.ContainerCreate(
		ctx,
		config,
		hostConfig,
		nil, nil,
		containerName,
	)
	if err != nil {
		log.Error().
			Err(err).
			Str("container", containerName).
			Msg("failed to create container")
		return "", err
	}
	return c.ID, nil
}

func (d *Daemon) ContainerStart(containerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := d.Client.ContainerStart(
		ctx,
		containerID,
		container.StartOptions{},
	)
	if err != nil {
		log.Error().
			Err(err).
			Str("container", containerID).
			Msg("failed to start container")
		return err
	}
	return nil
}

func (d *Daemon) ContainerStop(containerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := d.Client.ContainerStop(
		ctx,
		containerID,
		container.StopOptions{},
	)
	if err != nil {
		log.Error().
			Err(err).
			Str("container", containerID).
			Msg("failed to stop container")
		return err
	}
	return nil
}

func (d *Daemon) ContainerRemove(containerID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := d.Client.ContainerRemove(
		ctx,
		containerID,
		container.RemoveOptions{Force: true},
	)
	if err != nil {
		log.Error().
			Err(err).
			Str("container", containerID).
			Msg("failed to remove container")
		return err
	}
	return nil
}

// FindContainerByName returns the container id for an exact name match, or
// empty when none exists.
func (d *Daemon) FindContainerByName(containerName string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nameFilters := filters.NewArgs()
	nameFilters.Add("name", containerName)
	containers, err := d.Client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: nameFilters,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("container", containerName).
			Msg("failed to list containers")
		return "", err
	}
	if len(containers) == 0 {
		return "", nil
	}
	return containers[0].ID, nil
}
