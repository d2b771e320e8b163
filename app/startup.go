package app

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shyamyadavji/weather/assets"
	"github.com/shyamyadavji/weather/datasource"
)

// Category labels the kind of problem that aborted startup, so the operator
// can tell a bad credential from a missing file from a dead network.
type Category string

const (
	CategoryConfiguration Category = "configuration"
	CategoryResource      Category = "resource"
	CategoryConnectivity  Category = "connectivity"
)

// StartupError is a fatal pre-interaction failure. The process must exit
// non-zero with the category in the diagnostic.
type StartupError struct {
	Category Category
	Err      error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Category, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// credentialPattern is the fixed-length alphanumeric shape a WeatherAPI key
// must match before any network call is attempted.
var credentialPattern = regexp.MustCompile(`^[a-zA-Z0-9]{30}$`)

// ValidateCredential checks the credential format only; the probe verifies
// it against the API.
func ValidateCredential(key string) error {
	if !credentialPattern.MatchString(key) {
		return &StartupError{
			Category: CategoryConfiguration,
			Err:      fmt.Errorf("invalid or missing API key format"),
		}
	}
	return nil
}

// Startup runs the pre-interaction checks in order: credential format,
// required assets, connectivity probe. The first failure aborts with a
// categorized StartupError.
func Startup(ctx context.Context, key, assetsDir string, gateway datasource.Gateway, probeLocation string) error {
	if err := ValidateCredential(key); err != nil {
		return err
	}

	if err := assets.Verify(assetsDir); err != nil {
		return &StartupError{Category: CategoryResource, Err: err}
	}

	if err := gateway.Probe(ctx, probeLocation); err != nil {
		category := CategoryConnectivity
		if datasource.KindOf(err) == datasource.ErrAuth {
			// A rejected credential is a configuration problem, not a
			// network one.
			category = CategoryConfiguration
		}
		return &StartupError{Category: category, Err: err}
	}
	return nil
}
