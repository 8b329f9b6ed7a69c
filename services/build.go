package services

import (
	"fmt"

	"docshub/models"
)

// BuildContainerName is the container a build runs in. The listener
// identifies exiting builds by the build_id container label, not by name.
func BuildContainerName(build *models.Build) string {
	return fmt.Sprintf("docsbuild_%d", build.ID)
}

// BuildCleanup stops and removes the build's container, if any.
func BuildCleanup(build *models.Build) error {
	d, err := NewDaemon()
	if err != nil {
		return err
	}
	defer d.Client.Close()

	contID, err := d.FindContainerByName(BuildContainerName(build))
	if err != nil {
		return err
	}
	if contID == "" {
		return nil
	}

	if err := d.ContainerStop(contID); err != nil {
		return err
	}
	return d.ContainerRemove(contID)
}
