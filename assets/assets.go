package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The static files the presentation surface needs at startup. Their absence
// is a fatal startup error, not a runtime-recoverable one.
const (
	BackgroundImage = "background.png"
	SunIcon         = "sun.png"
	MoonIcon        = "moon.png"
)

// Required returns the full paths of all required asset files under dir.
func Required(dir string) []string {
	return []string{
		filepath.Join(dir, BackgroundImage),
		filepath.Join(dir, SunIcon),
		filepath.Join(dir, MoonIcon),
	}
}

// Verify stats every required asset and returns one error naming all the
// missing files, or nil when everything is present.
func Verify(dir string) error {
	var missing []string
	for _, path := range Required(dir) {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required file(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// IconPath picks the day or night icon for the current conditions view.
func IconPath(dir string, isDay bool) string {
	if isDay {
		return filepath.Join(dir, SunIcon)
	}
	return filepath.Join(dir, MoonIcon)
}
