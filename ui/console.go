package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shyamyadavji/weather/app"
	"github.com/shyamyadavji/weather/models"
	"github.com/shyamyadavji/weather/payload"
)

// Console is a plain-text presentation surface. It renders snapshots and
// chat replies to out and feeds user actions to the core from in. Input is
// consumed line by line, so only one cycle is ever in flight.
type Console struct {
	in  io.Reader
	out io.Writer
}

// Ensure Console implements the presentation contract
var _ app.Surface = (*Console)(nil)

// NewConsole creates a console surface bound to stdin and stdout.
func NewConsole() *Console {
	return &Console{in: os.Stdin, out: os.Stdout}
}

// OnSnapshotUpdated renders the current, hourly, daily and astronomy views.
// Unavailable fields already carry the sentinel text; unavailable sections
// are replaced with a placeholder line.
func (c *Console) OnSnapshotUpdated(snapshot models.WeatherSnapshot, location string) {
	fmt.Fprintf(c.out, "\n=== %s ===\n", location)

	if cur := snapshot.Current; cur != nil {
		fmt.Fprintf(c.out, "Now: %s°C, %s\n", cur.TempC, cur.Condition)
		fmt.Fprintf(c.out, "  Humidity: %s%%  Wind: %s km/h  Pressure: %s mb  Visibility: %s km\n",
			cur.Humidity, cur.WindKph, cur.PressureMb, cur.VisKm)
		if cur.LocalTime != payload.Sentinel {
			fmt.Fprintf(c.out, "  Local time: %s\n", cur.LocalTime)
		}
	} else {
		fmt.Fprintln(c.out, "Current conditions not available.")
	}

	if len(snapshot.Forecast) > 0 {
		fmt.Fprintln(c.out, "\nToday, hour by hour:")
		for _, hour := range snapshot.Forecast[0].Hours {
			fmt.Fprintf(c.out, "  %-18s %6s°C  %-24s %s km/h\n",
				hour.Time, hour.TempC, hour.Condition, hour.WindKph)
		}
		fmt.Fprintln(c.out, "\nNext days:")
		for _, day := range snapshot.Forecast {
			fmt.Fprintf(c.out, "  %-12s ↑%s° ↓%s°  %-24s rain %s%%\n",
				day.Date, day.MaxTempC, day.MinTempC, day.Condition, day.RainChance)
		}
	} else {
		fmt.Fprintln(c.out, "Forecast not available.")
	}

	if astro := snapshot.Astro; astro != nil {
		fmt.Fprintf(c.out, "\nSunrise %s  Sunset %s  Moonrise %s  Moonset %s\n",
			astro.Sunrise, astro.Sunset, astro.Moonrise, astro.Moonset)
		fmt.Fprintf(c.out, "Moon: %s (%s%% illuminated)\n", astro.MoonPhase, astro.MoonIllumination)
	} else {
		fmt.Fprintln(c.out, "Astronomy data not available.")
	}
	fmt.Fprintln(c.out)
}

// OnChatReply prints one bot line. Error replies already carry the marker
// prefix in their text.
func (c *Console) OnChatReply(text string, isError bool) {
	fmt.Fprintf(c.out, "Bot: %s\n", text)
}

// Run reads user actions until EOF or quit. A line starting with "search "
// triggers a search cycle; everything else is a chat message.
func (c *Console) Run(ctx context.Context, a *app.App) error {
	fmt.Fprintln(c.out, "Bot: Hello! Ask me about the weather, or type 'search <city>'.")

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return nil
		case strings.HasPrefix(line, "search "):
			city := strings.TrimSpace(strings.TrimPrefix(line, "search "))
			if err := a.Search(ctx, city); err != nil {
				c.OnChatReply(fmt.Sprintf("❌ Error: %v", err), true)
			}
		default:
			a.Chat(ctx, line)
		}
	}
	return scanner.Err()
}
