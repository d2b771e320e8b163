package datasource

import (
	"context"
	"testing"

	"github.com/shyamyadavji/weather/payload"
)

type stubGateway struct {
	fetches int
	probes  int
}

func (s *stubGateway) Fetch(ctx context.Context, location string, kind EndpointKind) (payload.Tree, error) {
	s.fetches++
	return payload.Tree{"current": map[string]any{}}, nil
}

func (s *stubGateway) Probe(ctx context.Context, location string) error {
	s.probes++
	return nil
}

func (s *stubGateway) Name() string { return "Stub" }

func TestRateLimitedGatewayForwards(t *testing.T) {
	stub := &stubGateway{}
	limited := NewRateLimitedGateway(stub, 100, 10)

	if got := limited.Name(); got != "Stub [Rate Limited]" {
		t.Errorf("Name = %q", got)
	}

	if _, err := limited.Fetch(context.Background(), "Paris", KindCurrent); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if err := limited.Probe(context.Background(), "London"); err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if stub.fetches != 1 || stub.probes != 1 {
		t.Errorf("forwarded calls = %d/%d, want 1/1", stub.fetches, stub.probes)
	}
}

func TestRateLimitedGatewayHonorsCancellation(t *testing.T) {
	stub := &stubGateway{}
	// A zero-burst limiter never grants a token, so the wait must end with
	// the context.
	limited := NewRateLimitedGateway(stub, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := limited.Fetch(ctx, "Paris", KindCurrent); err == nil {
		t.Error("expected an error from a canceled wait")
	}
	if stub.fetches != 0 {
		t.Errorf("fetches = %d, want 0", stub.fetches)
	}
}
