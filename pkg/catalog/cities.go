package catalog

import "github.com/jeslor/globe-with-connecting-cities/pkg/geo"

// DefaultEntries is the built-in list of cities connected by flights.
var DefaultEntries = []Entry{
	{"Frankfurt", geo.GeoPoint{Lat: 50.1109, Lon: 8.6821}},
	{"New York", geo.GeoPoint{Lat: 40.7128, Lon: -74.006}},
	{"Tokyo", geo.GeoPoint{Lat: 35.6895, Lon: 139.6917}},
	{"Sydney", geo.GeoPoint{Lat: -33.8688, Lon: 151.2093}},
	{"Cape Town", geo.GeoPoint{Lat: -33.9249, Lon: 18.4241}},
	{"Nairobi", geo.GeoPoint{Lat: -1.2921, Lon: 36.8219}},
	{"Toronto", geo.GeoPoint{Lat: 43.65107, Lon: -79.347015}},
	{"Rio de Janeiro", geo.GeoPoint{Lat: -22.9068, Lon: -43.1729}},
	{"Paris", geo.GeoPoint{Lat: 48.8566, Lon: 2.3522}},
	{"Dubai", geo.GeoPoint{Lat: 25.2048, Lon: 55.2708}},
	{"London", geo.GeoPoint{Lat: 51.5074, Lon: -0.1278}},
	{"Los Angeles", geo.GeoPoint{Lat: 34.0522, Lon: -118.2437}},
	{"Moscow", geo.GeoPoint{Lat: 55.7558, Lon: 37.6173}},
	{"Mexico City", geo.GeoPoint{Lat: 19.4326, Lon: -99.1332}},
	{"Mumbai", geo.GeoPoint{Lat: 19.076, Lon: 72.8777}},
	{"Beijing", geo.GeoPoint{Lat: 39.9042, Lon: 116.4074}},
	{"Santiago", geo.GeoPoint{Lat: -33.4489, Lon: -70.6693}},
	{"Berlin", geo.GeoPoint{Lat: 52.52, Lon: 13.405}},
	{"Istanbul", geo.GeoPoint{Lat: 41.0082, Lon: 28.9784}},
	{"Lima", geo.GeoPoint{Lat: -12.0464, Lon: -77.0428}},
	{"Cairo", geo.GeoPoint{Lat: 30.0444, Lon: 31.2357}},
	{"Seoul", geo.GeoPoint{Lat: 37.5665, Lon: 126.978}},
	{"Buenos Aires", geo.GeoPoint{Lat: -34.6037, Lon: -58.3816}},
	{"Wellington", geo.GeoPoint{Lat: -41.2865, Lon: 174.7762}},
	{"Stockholm", geo.GeoPoint{Lat: 59.3293, Lon: 18.0686}},
}
