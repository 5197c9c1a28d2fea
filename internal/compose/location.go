package compose

import "strings"

var usCountryNames = map[string]struct{}{
	"us":                       {},
	"usa":                      {},
	"united states":            {},
	"united states of america": {},
}

// stateCountry renders "state, country" with US collapsed to state only and
// empty parts skipped.
func stateCountry(state, country string) string {
	s := strings.TrimSpace(state)
	c := strings.TrimSpace(country)
	if s == "" && c == "" {
		return ""
	}
	if _, isUS := usCountryNames[strings.ToLower(c)]; c != "" && isUS {
		return s
	}
	if s != "" && c != "" {
		return s + ", " + c
	}
	if s != "" {
		return s
	}
	return c
}

// cityLocation prefixes the city onto a state/country tail.
func cityLocation(city, state, country string) string {
	tail := stateCountry(state, country)
	city = strings.TrimSpace(city)
	switch {
	case city == "":
		return tail
	case tail == "":
		return city
	default:
		return city + ", " + tail
	}
}
