package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	SurrealImage = "surrealdb/surrealdb:v2.1.4"
	SurrealPort  = "8000/tcp"
)

type SurrealContainer struct {
	testcontainers.Container
	BaseURL string
}

// StartSurreal runs an in-memory SurrealDB with authentication disabled and
// waits until its HTTP health endpoint answers.
func StartSurreal(ctx context.Context) (*SurrealContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        SurrealImage,
		ExposedPorts: []string{SurrealPort},
		Cmd:          []string{"start", "--unauthenticated", "--log", "warn", "memory"},
		WaitingFor: wait.ForHTTP("/health").
			WithPort(SurrealPort).
			WithStartupTimeout(60 * time.Second),
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start surrealdb: %w", err)
	}

	baseURL, err := ctr.PortEndpoint(ctx, SurrealPort, "http")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get endpoint: %w", err)
	}

	return &SurrealContainer{Container: ctr, BaseURL: baseURL}, nil
}
