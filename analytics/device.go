package analytics

import (
	"regexp"
	"strings"

	"github.com/mileusna/useragent"

	"cardhub/models"
)

var (
	tabletPattern = regexp.MustCompile(`(?i)(tablet|ipad|playbook|silk)`)
	mobilePattern = regexp.MustCompile(`Mobile|Android|iP(hone|od)|IEMobile|BlackBerry|Kindle|Silk-Accelerated|(hpw|web)OS|Opera M(obi|ini)`)
)

// ClassifyDevice maps a user agent to a device class. Tablet patterns are
// checked first so that tablets are never counted as mobile. The result is
// a heuristic; unusual agents can land in the wrong bucket.
func ClassifyDevice(userAgent string) models.DeviceType {
	if userAgent == "" {
		return models.DeviceUnknown
	}
	if tabletPattern.MatchString(userAgent) || androidWithoutMobi(userAgent) {
		return models.DeviceTablet
	}
	if mobilePattern.MatchString(userAgent) {
		return models.DeviceMobile
	}
	return models.DeviceDesktop
}

// androidWithoutMobi matches Android agents that do not advertise "mobi"
// after the platform token, which is how Android tablets identify.
func androidWithoutMobi(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	i := strings.LastIndex(ua, "android")
	return i >= 0 && !strings.Contains(ua[i:], "mobi")
}

// Browser returns the browser family name, or "" when it cannot be told.
func Browser(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := useragent.Parse(userAgent)
	if ua.Name == "" {
		return "Other"
	}
	return ua.Name
}
