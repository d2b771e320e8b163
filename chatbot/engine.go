package chatbot

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shyamyadavji/weather/datasource"
	"github.com/shyamyadavji/weather/payload"
)

// ErrorMarker prefixes every fetch-failure reply so the presentation surface
// can apply error styling without parsing the sentence.
const ErrorMarker = "❌ "

// locationPattern matches a location phrase like "in san francisco" or
// "for tokyo?". The captured group is trimmed before use.
var locationPattern = regexp.MustCompile(`\b(?:in|for|at)\s+([a-zA-Z\s-]+)(?:\?|$|\.)`)

// weatherKeywords trigger the specify-a-city prompt when no location is
// available at all.
var weatherKeywords = []string{"temperature", "rain", "wind", "sun", "weather"}

const (
	greetingReply = "Hello! How can I help you with the weather today?"
	helpReply     = "I can tell you about temperature, rain, wind, or sun times for a city. How can I help?"
	specifyReply  = "Please specify a city first (e.g., 'temperature in London' or search for a city)."
	sunAmbiguous  = "Are you asking about sunrise or sunset?"
)

// Reply is the outcome of processing one chat message.
type Reply struct {
	Text    string
	IsError bool
}

// Engine turns one line of free text into one reply, fetching through the
// gateway and reusing the conversation context's cached payloads when the
// location has not changed.
type Engine struct {
	gateway datasource.Gateway
	convctx *Context
	caser   cases.Caser
}

// NewEngine creates an engine bound to a gateway and a conversation context.
func NewEngine(gateway datasource.Gateway, convctx *Context) *Engine {
	return &Engine{
		gateway: gateway,
		convctx: convctx,
		caser:   cases.Title(language.English),
	}
}

// ProcessMessage runs the full pipeline for one message: location
// extraction, location resolution, topic matching, cached-or-fresh data
// acquisition and reply formatting. Fetch failures come back as error-marked
// replies, never as errors.
func (e *Engine) ProcessMessage(ctx context.Context, text string) Reply {
	msg := strings.ToLower(strings.TrimSpace(text))

	// Extraction runs unconditionally, before any topic matching.
	location := e.extractLocation(msg)
	if location == "" {
		location = e.convctx.LastLocation()
	}
	if location == "" {
		if containsAny(msg, weatherKeywords...) {
			return Reply{Text: specifyReply}
		}
	}

	var reply Reply
	switch {
	case containsAny(msg, "hi", "hello", "hey", "greetings"):
		// Greetings ignore the location entirely.
		reply.Text = greetingReply

	case containsAny(msg, "temperature", "how hot", "how cold"):
		if location != "" {
			reply = e.currentReply(ctx, location,
				"The current temperature in %s is %s°C.",
				"Sorry, I couldn't get the temperature for %s.",
				"temp_c")
		}

	case containsAny(msg, "rain", "precipitation"):
		if location != "" {
			reply = e.rainReply(ctx, location)
		}

	case strings.Contains(msg, "wind"):
		if location != "" {
			reply = e.currentReply(ctx, location,
				"The current wind speed in %s is %s km/h.",
				"Sorry, I couldn't get the wind speed for %s.",
				"wind_kph")
		}

	case strings.Contains(msg, "sun"):
		if location != "" {
			switch {
			case strings.Contains(msg, "rise"):
				reply = e.astroReply(ctx, location, "sunrise",
					"Sunrise in %s is at %s.",
					"Sorry, I couldn't get the sunrise time for %s.")
			case strings.Contains(msg, "set"):
				reply = e.astroReply(ctx, location, "sunset",
					"Sunset in %s is at %s.",
					"Sorry, I couldn't get the sunset time for %s.")
			default:
				reply.Text = sunAmbiguous
			}
		}

	case containsAny(msg, "weather", "forecast"):
		if location != "" {
			reply = e.conditionReply(ctx, location)
		}
	}

	if reply.Text == "" {
		reply.Text = helpReply
	}
	return reply
}

// extractLocation applies the location phrase rule and returns the canonical
// (title-cased) form of the captured words, or "".
func (e *Engine) extractLocation(msg string) string {
	m := locationPattern.FindStringSubmatch(msg)
	if m == nil {
		return ""
	}
	candidate := strings.TrimSpace(m[1])
	if candidate == "" {
		return ""
	}
	return e.caser.String(candidate)
}

// fetch returns the payload for kind, reusing the cached slot when location
// is still the last resolved one. A fresh fetch commits location and payload
// to the context only on success.
func (e *Engine) fetch(ctx context.Context, location string, kind datasource.EndpointKind) (payload.Tree, error) {
	if tree, ok := e.convctx.Cached(location, kind); ok {
		return tree, nil
	}
	tree, err := e.gateway.Fetch(ctx, location, kind)
	if err != nil {
		return nil, err
	}
	e.convctx.Commit(location, kind, tree)
	return tree, nil
}

func (e *Engine) currentReply(ctx context.Context, location, okFormat, sorryFormat, field string) Reply {
	tree, err := e.fetch(ctx, location, datasource.KindCurrent)
	if err != nil {
		return fetchFailure(location, datasource.KindCurrent)
	}
	value := payload.String(tree, "current", field)
	if value == payload.Sentinel {
		return Reply{Text: fmt.Sprintf(sorryFormat, location)}
	}
	return Reply{Text: fmt.Sprintf(okFormat, location, value)}
}

func (e *Engine) conditionReply(ctx context.Context, location string) Reply {
	tree, err := e.fetch(ctx, location, datasource.KindCurrent)
	if err != nil {
		return fetchFailure(location, datasource.KindCurrent)
	}
	value := payload.String(tree, "current", "condition", "text")
	if value == payload.Sentinel {
		return Reply{Text: fmt.Sprintf("Sorry, I couldn't get the current conditions for %s.", location)}
	}
	return Reply{Text: fmt.Sprintf("The current condition in %s is '%s'.", location, value)}
}

func (e *Engine) rainReply(ctx context.Context, location string) Reply {
	tree, err := e.fetch(ctx, location, datasource.KindForecast)
	if err != nil {
		return fetchFailure(location, datasource.KindForecast)
	}
	value := payload.Sentinel
	if day, ok := payload.Element(tree, 0, "forecast", "forecastday"); ok {
		value = payload.String(day, "day", "daily_chance_of_rain")
	}
	if value == payload.Sentinel {
		return Reply{Text: fmt.Sprintf("Sorry, I couldn't get the rain forecast for %s.", location)}
	}
	return Reply{Text: fmt.Sprintf("The chance of rain in %s today is %s%%.", location, value)}
}

func (e *Engine) astroReply(ctx context.Context, location, field, okFormat, sorryFormat string) Reply {
	tree, err := e.fetch(ctx, location, datasource.KindAstronomy)
	if err != nil {
		return fetchFailure(location, datasource.KindAstronomy)
	}
	value := payload.String(tree, "astronomy", "astro", field)
	if value == payload.Sentinel {
		return Reply{Text: fmt.Sprintf(sorryFormat, location)}
	}
	return Reply{Text: fmt.Sprintf(okFormat, location, value)}
}

func fetchFailure(location string, kind datasource.EndpointKind) Reply {
	return Reply{
		Text:    fmt.Sprintf("%sSorry, couldn't fetch %s data for %s.", ErrorMarker, kind, location),
		IsError: true,
	}
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}
