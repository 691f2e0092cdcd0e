package station

import "strings"

const (
	// URIBase is prepended to bare station codes.
	URIBase = "http://irail.be/stations/NMBS/"
	// LegacyPrefix marks old-style iRail ids such as BE.NMBS.008892007.
	LegacyPrefix = "BE.NMBS."
)

// ToURI converts a URI, bare numeric code or legacy prefixed code to the
// canonical station URI.
func ToURI(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "http") {
		return id
	}
	id = strings.TrimPrefix(id, LegacyPrefix)
	return URIBase + id
}

// IndexKey is the lookup key for a station URI.
func IndexKey(uri string) string {
	return strings.ToLower(uri)
}

// Code returns the trailing code of a station URI (008892007 for
// http://irail.be/stations/NMBS/008892007).
func Code(uri string) string {
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
