package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shyamyadavji/weather/app"
	"github.com/shyamyadavji/weather/datasource"
	"github.com/shyamyadavji/weather/models"
	"github.com/shyamyadavji/weather/payload"
)

const goodKey = "abcdefghijklmnopqrstuvwxyz0123"

type fakeGateway struct {
	payloads map[datasource.EndpointKind]payload.Tree
	errs     map[datasource.EndpointKind]error
	probeErr error
	fetches  int
}

func (g *fakeGateway) Fetch(ctx context.Context, location string, kind datasource.EndpointKind) (payload.Tree, error) {
	g.fetches++
	if err, ok := g.errs[kind]; ok {
		return nil, err
	}
	return g.payloads[kind], nil
}

func (g *fakeGateway) Probe(ctx context.Context, location string) error { return g.probeErr }

func (g *fakeGateway) Name() string { return "Fake" }

type chatLine struct {
	text    string
	isError bool
}

type fakeSurface struct {
	snapshots []models.WeatherSnapshot
	locations []string
	chat      []chatLine
}

func (s *fakeSurface) OnSnapshotUpdated(snapshot models.WeatherSnapshot, location string) {
	s.snapshots = append(s.snapshots, snapshot)
	s.locations = append(s.locations, location)
}

func (s *fakeSurface) OnChatReply(text string, isError bool) {
	s.chat = append(s.chat, chatLine{text: text, isError: isError})
}

func fullPayloads() map[datasource.EndpointKind]payload.Tree {
	return map[datasource.EndpointKind]payload.Tree{
		datasource.KindCurrent: {
			"location": map[string]any{"localtime": "2024-01-01 14:00"},
			"current": map[string]any{
				"temp_c":    21.5,
				"condition": map[string]any{"text": "Sunny"},
			},
		},
		datasource.KindForecast: {
			"forecast": map[string]any{
				"forecastday": []any{
					map[string]any{
						"date": "2024-01-01",
						"day":  map[string]any{"daily_chance_of_rain": 65.0},
					},
				},
			},
		},
		datasource.KindAstronomy: {
			"astronomy": map[string]any{
				"astro": map[string]any{"sunrise": "07:58 AM", "sunset": "04:22 PM"},
			},
		},
	}
}

func TestSearchPublishesSnapshot(t *testing.T) {
	gateway := &fakeGateway{payloads: fullPayloads()}
	surface := &fakeSurface{}
	core := app.New(gateway, surface)

	if err := core.Search(context.Background(), "paris"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(surface.snapshots) != 1 {
		t.Fatalf("snapshots published = %d, want 1", len(surface.snapshots))
	}
	snap := surface.snapshots[0]
	if surface.locations[0] != "Paris" || snap.Location != "Paris" {
		t.Errorf("location = %q/%q, want canonical Paris", surface.locations[0], snap.Location)
	}
	if snap.Current == nil || snap.Current.TempC != "21.5" {
		t.Errorf("current section = %+v", snap.Current)
	}
	if len(snap.Forecast) != 1 || snap.Astro == nil {
		t.Errorf("forecast/astro sections missing: %+v", snap)
	}

	if len(surface.chat) != 1 {
		t.Fatalf("chat lines = %v, want the confirmation line", surface.chat)
	}
	if surface.chat[0].text != "Showing weather information for Paris." || surface.chat[0].isError {
		t.Errorf("confirmation line = %+v", surface.chat[0])
	}
}

func TestSearchRejectsEmptyLocation(t *testing.T) {
	gateway := &fakeGateway{payloads: fullPayloads()}
	core := app.New(gateway, &fakeSurface{})

	if err := core.Search(context.Background(), "   "); err == nil {
		t.Error("expected an error for an empty location")
	}
	if gateway.fetches != 0 {
		t.Errorf("fetches = %d, want 0", gateway.fetches)
	}
}

func TestSearchSectionsFailIndependently(t *testing.T) {
	gateway := &fakeGateway{
		payloads: fullPayloads(),
		errs: map[datasource.EndpointKind]error{
			datasource.KindAstronomy: &datasource.FetchError{
				Kind:     datasource.ErrTimeout,
				Endpoint: datasource.KindAstronomy,
				Location: "Paris",
			},
		},
	}
	surface := &fakeSurface{}
	core := app.New(gateway, surface)

	if err := core.Search(context.Background(), "paris"); err != nil {
		t.Fatalf("Search should succeed with partial sections, got %v", err)
	}

	snap := surface.snapshots[0]
	if snap.Current == nil || len(snap.Forecast) == 0 {
		t.Error("healthy sections should still populate")
	}
	if snap.Astro != nil {
		t.Error("failed astro section should stay nil")
	}

	var errLines []chatLine
	for _, line := range surface.chat {
		if line.isError {
			errLines = append(errLines, line)
		}
	}
	if len(errLines) != 1 {
		t.Fatalf("error chat lines = %v, want exactly 1", surface.chat)
	}
	if got := errLines[0].text; got != "❌ The astronomy request for Paris timed out." {
		t.Errorf("error line = %q", got)
	}
}

func TestSearchAllEndpointsFailing(t *testing.T) {
	fetchErr := &datasource.FetchError{
		Kind:     datasource.ErrNotFound,
		Endpoint: datasource.KindCurrent,
		Location: "Xyzzy",
		Status:   400,
	}
	gateway := &fakeGateway{errs: map[datasource.EndpointKind]error{
		datasource.KindCurrent:   fetchErr,
		datasource.KindForecast:  fetchErr,
		datasource.KindAstronomy: fetchErr,
	}}
	surface := &fakeSurface{}
	core := app.New(gateway, surface)

	err := core.Search(context.Background(), "xyzzy")
	if err == nil {
		t.Fatal("expected an error when every endpoint fails")
	}
	if datasource.KindOf(err) != datasource.ErrNotFound {
		t.Errorf("error kind = %q", datasource.KindOf(err))
	}
	if len(surface.snapshots) != 0 {
		t.Error("no snapshot should be published")
	}
	if core.Context().LastLocation() != "" {
		t.Error("a fully failed search must not resolve the location")
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	gateway := &fakeGateway{payloads: fullPayloads()}
	surface := &fakeSurface{}
	core := app.New(gateway, surface)
	ctx := context.Background()

	if err := core.Search(ctx, "paris"); err != nil {
		t.Fatal(err)
	}
	if err := core.Search(ctx, "paris"); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(surface.snapshots[0], surface.snapshots[1]); diff != "" {
		t.Errorf("repeated search snapshots differ (-first +second):\n%s", diff)
	}
}

func TestChatPublishesReply(t *testing.T) {
	gateway := &fakeGateway{payloads: fullPayloads()}
	surface := &fakeSurface{}
	core := app.New(gateway, surface)

	core.Chat(context.Background(), "how hot is it in paris")

	if len(surface.chat) != 1 {
		t.Fatalf("chat lines = %v", surface.chat)
	}
	if got := surface.chat[0].text; got != "The current temperature in Paris is 21.5°C." {
		t.Errorf("reply = %q", got)
	}
	if surface.chat[0].isError {
		t.Error("reply should not be error-marked")
	}
}

func TestChatAfterSearchReusesCache(t *testing.T) {
	gateway := &fakeGateway{payloads: fullPayloads()}
	surface := &fakeSurface{}
	core := app.New(gateway, surface)
	ctx := context.Background()

	if err := core.Search(ctx, "paris"); err != nil {
		t.Fatal(err)
	}
	fetched := gateway.fetches

	core.Chat(ctx, "temperature")
	core.Chat(ctx, "will it rain")
	core.Chat(ctx, "when is sunrise")

	if gateway.fetches != fetched {
		t.Errorf("chat after search fetched %d more times, want 0", gateway.fetches-fetched)
	}
}

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"background.png", "sun.png", "moon.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestStartup(t *testing.T) {
	ctx := context.Background()

	category := func(t *testing.T, err error) app.Category {
		t.Helper()
		var se *app.StartupError
		if !errors.As(err, &se) {
			t.Fatalf("expected *StartupError, got %v", err)
		}
		return se.Category
	}

	t.Run("all checks pass", func(t *testing.T) {
		err := app.Startup(ctx, goodKey, writeAssets(t), &fakeGateway{}, "London")
		if err != nil {
			t.Errorf("Startup failed: %v", err)
		}
	})

	t.Run("bad credential format", func(t *testing.T) {
		err := app.Startup(ctx, "tooshort", writeAssets(t), &fakeGateway{}, "London")
		if got := category(t, err); got != app.CategoryConfiguration {
			t.Errorf("category = %q, want configuration", got)
		}
	})

	t.Run("missing assets", func(t *testing.T) {
		err := app.Startup(ctx, goodKey, t.TempDir(), &fakeGateway{}, "London")
		if got := category(t, err); got != app.CategoryResource {
			t.Errorf("category = %q, want resource", got)
		}
	})

	t.Run("probe auth rejection is a configuration error", func(t *testing.T) {
		gateway := &fakeGateway{probeErr: &datasource.FetchError{
			Kind:     datasource.ErrAuth,
			Endpoint: datasource.KindCurrent,
			Location: "London",
			Status:   401,
		}}
		err := app.Startup(ctx, goodKey, writeAssets(t), gateway, "London")
		if got := category(t, err); got != app.CategoryConfiguration {
			t.Errorf("category = %q, want configuration", got)
		}
	})

	t.Run("probe network failure is a connectivity error", func(t *testing.T) {
		gateway := &fakeGateway{probeErr: &datasource.FetchError{
			Kind:     datasource.ErrNetworkUnreachable,
			Endpoint: datasource.KindCurrent,
			Location: "London",
		}}
		err := app.Startup(ctx, goodKey, writeAssets(t), gateway, "London")
		if got := category(t, err); got != app.CategoryConnectivity {
			t.Errorf("category = %q, want connectivity", got)
		}
	})
}
