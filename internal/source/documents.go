package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/ingest"
)

// ErrMissingKey is returned when the timezone provider is queried without
// an API key.
var ErrMissingKey = errors.New("timezone provider API key not set")

// ErrEmptyDocument is returned when a provider answers with a valid but
// empty document.
var ErrEmptyDocument = errors.New("provider returned no entries")

// FetchCountries downloads the country document. The body is returned
// verbatim once it parses as a non-empty country list.
func (c *Client) FetchCountries(ctx context.Context, countriesURL string) ([]byte, error) {
	body, err := c.Get(ctx, countriesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("get countries: %w", err)
	}

	entries, err := ingest.ParseCountries(body)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("countries: %w", ErrEmptyDocument)
	}

	c.logger.Info("fetched countries", zap.Int("entries", len(entries)), zap.Int("bytes", len(body)))
	return body, nil
}

// FetchTimezones downloads the zone list from a TimeZoneDB compatible
// endpoint.
func (c *Client) FetchTimezones(ctx context.Context, timezonesURL, apiKey string) ([]byte, error) {
	if apiKey == "" {
		return nil, ErrMissingKey
	}

	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("format", "json")

	body, err := c.Get(ctx, timezonesURL, params)
	if err != nil {
		return nil, fmt.Errorf("get timezones: %w", err)
	}

	zones, err := ingest.ParseZones(body)
	if err != nil {
		return nil, err
	}
	if status := gjson.GetBytes(body, "status"); status.Exists() && !strings.EqualFold(status.String(), "OK") {
		return nil, fmt.Errorf("timezone API error: status=%s, message=%s", status.String(), gjson.GetBytes(body, "message").String())
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("timezones: %w", ErrEmptyDocument)
	}

	c.logger.Info("fetched timezones", zap.Int("zones", len(zones)), zap.Int("bytes", len(body)))
	return body, nil
}
