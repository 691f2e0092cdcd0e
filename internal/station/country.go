package station

import "strings"

const geonamesBase = "http://sws.geonames.org/"

// geonames ids of the countries served by the dataset.
var geonamesIDs = map[string]string{
	"at": "2782113",
	"be": "2802361",
	"ch": "2658434",
	"de": "2921044",
	"fr": "3017382",
	"gb": "2635167",
	"lu": "2960313",
	"nl": "2750405",
}

// CountryURI returns the geonames URI for an ISO2 code, or "" when unknown.
func CountryURI(code string) string {
	if id, ok := geonamesIDs[strings.ToLower(code)]; ok {
		return geonamesBase + id + "/"
	}
	return ""
}

// CountryCode accepts an ISO2 code or a geonames URI and returns the
// lowercase ISO2 code, or "" when it cannot be resolved.
func CountryCode(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "http") {
		return strings.ToLower(v)
	}
	id := strings.Trim(strings.TrimPrefix(strings.TrimPrefix(v, "https://"), "http://"), "/")
	id = id[strings.LastIndexByte(id, '/')+1:]
	for code, gid := range geonamesIDs {
		if gid == id {
			return code
		}
	}
	return ""
}
