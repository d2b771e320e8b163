package main

import (
	"context"
	"fmt"

	"github.com/shyamyadavji/weather/chatbot"
	"github.com/shyamyadavji/weather/datasource"
	"github.com/shyamyadavji/weather/payload"
)

// cannedGateway serves fixed payloads without touching the network, so the
// conversation engine can be exercised offline.
type cannedGateway struct {
	fetches int
}

func (g *cannedGateway) Fetch(ctx context.Context, location string, kind datasource.EndpointKind) (payload.Tree, error) {
	g.fetches++
	switch kind {
	case datasource.KindCurrent:
		return payload.Tree{
			"location": map[string]any{"localtime": "2024-01-01 14:00"},
			"current": map[string]any{
				"temp_c":    21.5,
				"wind_kph":  14.0,
				"condition": map[string]any{"text": "Sunny"},
			},
		}, nil
	case datasource.KindForecast:
		return payload.Tree{
			"forecast": map[string]any{
				"forecastday": []any{
					map[string]any{
						"date": "2024-01-01",
						"day":  map[string]any{"daily_chance_of_rain": 65.0},
					},
				},
			},
		}, nil
	default:
		return payload.Tree{
			"astronomy": map[string]any{
				"astro": map[string]any{
					"sunrise": "07:58 AM",
					"sunset":  "04:22 PM",
				},
			},
		}, nil
	}
}

func (g *cannedGateway) Probe(ctx context.Context, location string) error { return nil }

func (g *cannedGateway) Name() string { return "Canned" }

func main() {
	fmt.Println("=== Running Chat Example ===")
	fmt.Println("This demonstrates the conversation engine against canned data")
	fmt.Println()

	gateway := &cannedGateway{}
	convctx := chatbot.NewContext()
	engine := chatbot.NewEngine(gateway, convctx)

	messages := []string{
		"hello there",
		"what's the temperature in paris?",
		"how windy is it",
		"will it rain today",
		"when does the sun rise",
		"sun",
		"thanks",
	}

	ctx := context.Background()
	for _, msg := range messages {
		reply := engine.ProcessMessage(ctx, msg)
		fmt.Printf("You: %s\nBot: %s\n\n", msg, reply.Text)
	}

	hits, misses := convctx.Stats()
	fmt.Printf("Gateway fetches: %d (cache hits: %d, misses: %d)\n", gateway.fetches, hits, misses)
}
