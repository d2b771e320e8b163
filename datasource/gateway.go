package datasource

import (
	"context"

	"github.com/shyamyadavji/weather/payload"
)

// EndpointKind identifies one of the three upstream weather API resources.
type EndpointKind string

const (
	KindCurrent   EndpointKind = "current"
	KindForecast  EndpointKind = "forecast"
	KindAstronomy EndpointKind = "astronomy"
)

// Gateway is an interface for services that can fetch raw weather payloads
// for a location from one of the upstream endpoints.
type Gateway interface {
	// Fetch issues one GET against the endpoint for kind and returns the
	// decoded body. Failures are classified as *FetchError.
	Fetch(ctx context.Context, location string, kind EndpointKind) (payload.Tree, error)

	// Probe verifies the credential and connectivity with a single
	// current-conditions fetch for a known-good location.
	Probe(ctx context.Context, location string) error

	// Name returns the gateway's name
	Name() string
}
