package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shyamyadavji/weather/chatbot"
	"github.com/shyamyadavji/weather/datasource"
	"github.com/shyamyadavji/weather/models"
	"github.com/shyamyadavji/weather/payload"
)

// Surface is the narrow update interface the core drives. The presentation
// side renders snapshots and chat replies; it never touches parsing or
// network error classification.
type Surface interface {
	// OnSnapshotUpdated fires after a successful search resolution.
	OnSnapshotUpdated(snapshot models.WeatherSnapshot, location string)

	// OnChatReply fires once per processed chat message.
	OnChatReply(text string, isError bool)
}

// App ties the gateway, the conversation engine and the shared context
// together behind the two user-triggered actions: search and chat. One mutex
// serializes cycles so at most one mutates the shared cache at a time.
type App struct {
	mu      sync.Mutex
	gateway datasource.Gateway
	convctx *chatbot.Context
	engine  *chatbot.Engine
	surface Surface
	caser   cases.Caser
}

// searchKinds is the fetch order of a full search cycle.
var searchKinds = []datasource.EndpointKind{
	datasource.KindCurrent,
	datasource.KindForecast,
	datasource.KindAstronomy,
}

// New creates the application core around a gateway and a presentation
// surface.
func New(gateway datasource.Gateway, surface Surface) *App {
	convctx := chatbot.NewContext()
	return &App{
		gateway: gateway,
		convctx: convctx,
		engine:  chatbot.NewEngine(gateway, convctx),
		surface: surface,
		caser:   cases.Title(language.English),
	}
}

// Context exposes the conversation context, primarily for diagnostics.
func (a *App) Context() *chatbot.Context {
	return a.convctx
}

// Search resolves location, fetches all three endpoints and publishes the
// normalized snapshot. Endpoint failures are independent: a failed section
// stays empty while the others populate, and each failure is reported as an
// error-marked chat reply. Search returns an error only when every endpoint
// failed, in which case nothing is committed and previously published data
// stands.
func (a *App) Search(ctx context.Context, location string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("please enter a city name")
	}
	canonical := a.caser.String(strings.ToLower(location))

	payloads := make(map[datasource.EndpointKind]payload.Tree, len(searchKinds))
	var failures []error
	for _, kind := range searchKinds {
		tree, err := a.gateway.Fetch(ctx, canonical, kind)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		payloads[kind] = tree
	}
	if len(payloads) == 0 {
		return failures[0]
	}

	// Context is committed only after the cycle succeeded.
	a.convctx.CommitAll(canonical, payloads)

	snapshot := models.BuildSnapshot(canonical,
		payloads[datasource.KindCurrent],
		payloads[datasource.KindForecast],
		payloads[datasource.KindAstronomy])
	a.surface.OnSnapshotUpdated(snapshot, canonical)
	a.surface.OnChatReply(fmt.Sprintf("Showing weather information for %s.", canonical), false)

	for _, err := range failures {
		a.surface.OnChatReply(chatbot.ErrorMarker+capitalizeCause(err), true)
	}
	return nil
}

// Chat processes one chat message through the conversation engine and
// publishes the reply.
func (a *App) Chat(ctx context.Context, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	reply := a.engine.ProcessMessage(ctx, message)
	a.surface.OnChatReply(reply.Text, reply.IsError)
}

// capitalizeCause turns a classified fetch error into a short user-facing
// phrase without exposing raw transport detail.
func capitalizeCause(err error) string {
	var fe *datasource.FetchError
	if !errors.As(err, &fe) {
		return "Something went wrong fetching weather data."
	}
	cause := "could not be fetched"
	switch fe.Kind {
	case datasource.ErrTimeout:
		cause = "timed out"
	case datasource.ErrNetworkUnreachable:
		cause = "failed: network error"
	case datasource.ErrNotFound:
		cause = fmt.Sprintf("failed: city not found: %q", fe.Location)
	case datasource.ErrAuth:
		cause = "failed: API rejected the credential"
	case datasource.ErrUpstream:
		cause = fmt.Sprintf("failed: API error (status %d)", fe.Status)
	case datasource.ErrMalformedResponse:
		cause = "returned an unreadable response"
	}
	return fmt.Sprintf("The %s request for %s %s.", fe.Endpoint, fe.Location, cause)
}
