package utils

import (
	"net"
	"net/http"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// GetIPAddress tries different methods to get the real client IP address
func GetIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header, taking the first non-private hop
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		for _, ip := range ips {
			trimmedIP := strings.TrimSpace(ip)
			parsedIP := net.ParseIP(trimmedIP)
			if parsedIP != nil && !isPrivateIP(parsedIP) {
				return trimmedIP
			}
		}
	}

	// Check X-Real-IP header
	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		if parsedIP := net.ParseIP(xRealIP); parsedIP != nil {
			return xRealIP
		}
	}

	// Fall back to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func isPrivateIP(ip net.IP) bool {
	privateNetworks := []*net.IPNet{
		{IP: net.ParseIP("10.0.0.0"), Mask: net.CIDRMask(8, 32)},
		{IP: net.ParseIP("172.16.0.0"), Mask: net.CIDRMask(12, 32)},
		{IP: net.ParseIP("192.168.0.0"), Mask: net.CIDRMask(16, 32)},
	}

	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// Location holds the parsed location information
type Location struct {
	Country string
	Region  string
	City    string
}

// GetLocationInfo extracts location information from the GeoIP record.
// Fields the database can't resolve stay empty.
func GetLocationInfo(record *geoip2.City) Location {
	var location Location

	if record == nil {
		return location
	}

	if record.Country.Names != nil {
		location.Country = record.Country.Names["en"]
	}

	if len(record.Subdivisions) > 0 && record.Subdivisions[0].Names != nil {
		location.Region = record.Subdivisions[0].Names["en"]
	}

	if record.City.Names != nil {
		location.City = record.City.Names["en"]
	}

	return location
}
