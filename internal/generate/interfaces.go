package generate

import (
	"context"

	"github.com/ytget/parcours/internal/model"
)

// Generator defines the interface for the route generation service.
type Generator interface {
	// Generate asks the service for a route and returns it once the request settles
	Generate(ctx context.Context, req model.RouteRequest) (*model.RouteResponse, error)

	// Health probes the service health endpoint
	Health(ctx context.Context) error
}
