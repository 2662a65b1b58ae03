package utils

import "github.com/mileusna/useragent"

func GetDeviceType(ua *useragent.UserAgent) string {
	if ua.Mobile {
		return "Mobile"
	} else if ua.Tablet {
		return "Tablet"
	} else if ua.Desktop {
		return "Desktop"
	} else if ua.Bot {
		return "Bot"
	} else {
		return "Unknown"
	}
}

// ClassifyUserAgent maps a raw user-agent string to a coarse device class
// and a browser name. Callers should treat the result as best effort.
func ClassifyUserAgent(uaString string) (device, browser string) {
	ua := useragent.Parse(uaString)
	return GetDeviceType(&ua), ua.Name
}
