// Package station defines the Station model shared by every dataset source,
// the search engine and the presentation layers.
package station

// Locales for which a station may carry an alternate name, in match order.
var Locales = []string{"nl", "fr", "de", "en"}

// Station is a railway station. Values are immutable once a dataset is loaded.
type Station struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	AlternateNames map[string]string `json:"alternateNames,omitempty"`
	CountryCode    string            `json:"countryCode,omitempty"`
	Longitude      float64           `json:"longitude"`
	Latitude       float64           `json:"latitude"`
	TrafficScore   float64           `json:"trafficScore"`
	TransferTime   int               `json:"transferTime,omitempty"`
	TafTapCode     string            `json:"tafTapCode,omitempty"`
	TelegraphCode  string            `json:"telegraphCode,omitempty"`
}

// Alternate returns the name for locale, falling back to the canonical name.
func (s *Station) Alternate(locale string) string {
	if v := s.AlternateNames[locale]; v != "" {
		return v
	}
	return s.Name
}

// LocalizedNames returns one name per entry of Locales, with fallbacks applied.
func (s *Station) LocalizedNames() []string {
	names := make([]string, 0, len(Locales))
	for _, l := range Locales {
		names = append(names, s.Alternate(l))
	}
	return names
}

// Names returns the canonical name followed by every distinct alternate.
func (s *Station) Names() []string {
	names := []string{s.Name}
	seen := map[string]bool{s.Name: true}
	for _, n := range s.LocalizedNames() {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// HasCoordinates reports whether the station has a usable position.
func (s *Station) HasCoordinates() bool {
	return s.Longitude != 0 || s.Latitude != 0
}
