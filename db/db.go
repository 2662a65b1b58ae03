package db

import (
	"fmt"

	"github.com/oschwald/geoip2-golang"
)

// CreateGeoIPConnection opens the GeoLite2 city database used to enrich
// leads with a coarse location. An empty path disables enrichment and
// returns a nil reader, which callers treat as "skip the lookup".
func CreateGeoIPConnection(path string) (*geoip2.Reader, error) {
	if path == "" {
		return nil, nil
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip connection error: %w", err)
	}

	return reader, nil
}
