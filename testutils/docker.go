package testutils

import (
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

const DynamoDbLocalImage = "amazon/dynamodb-local"

// DockerContainer is a detached container publishing one port on localhost.
type DockerContainer struct {
	Service       string
	Image         string
	Endpoint      BaseEndpoint
	ContainerPort int
	Id            string
}

// LaunchDynamoDbLocal starts the given version of DynamoDB Local, listening on
// endpoint.
func LaunchDynamoDbLocal(
	endpoint BaseEndpoint, version string,
) (*DockerContainer, error) {
	c := &DockerContainer{
		Service:       "DynamoDB",
		Image:         DynamoDbLocalImage + ":" + version,
		Endpoint:      endpoint,
		ContainerPort: 8000,
	}
	return c, c.Launch()
}

func checkDockerIsRunning() error {
	if err := exec.Command("docker", "info").Run(); err != nil {
		return errors.New("docker must be running to run this test")
	}
	return nil
}

func (c *DockerContainer) pull() error {
	if err := checkDockerIsRunning(); err != nil {
		return err
	}

	output, err := exec.Command("docker", "pull", c.Image).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to pull %s: %s:\n%s", c.Image, err, output)
	}
	return nil
}

func (c *DockerContainer) Launch() error {
	if err := c.pull(); err != nil {
		return err
	}

	portMap := fmt.Sprintf("%s:%d", c.Endpoint, c.ContainerPort)
	run := exec.Command("docker", "run", "-d", "-p", portMap, c.Image)

	if output, err := run.CombinedOutput(); err != nil {
		const errFmt = "failed to start local %s at %s: %s:\n%s"
		return fmt.Errorf(errFmt, c.Service, c.Endpoint, err, output)
	} else {
		c.Id = strings.TrimSpace(string(output))
	}

	log.Printf("local %s running at %s in container %s", c.Service, c.Endpoint, c.Id)
	return nil
}

// Cleanup stops and removes the container.
func (c *DockerContainer) Cleanup() error {
	log.Printf("removing %s container %s", c.Service, c.Id)

	for _, args := range [][]string{
		{"stop", "-t", "0", c.Id},
		{"rm", c.Id},
	} {
		output, err := exec.Command("docker", args...).CombinedOutput()
		if err != nil {
			const errFmt = "docker %s failed for %s container %s: %s:\n%s"
			return fmt.Errorf(errFmt, args[0], c.Service, c.Id, err, output)
		}
	}
	return nil
}
