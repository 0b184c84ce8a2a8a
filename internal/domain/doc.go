// Package domain models National Weather Service (NWS) marine forecast zones.
//
// # Data Source
//
// Zone definitions come from the NWS public forecast zone file published with
// the GIS shapefiles at https://www.weather.gov/source/gis/ShapeFiles/. The
// file is plain text, one zone per line, fields separated by '|':
//
//	ANZ050|Block Island Sound|FL|ANZ050
//	field0 | field1        |    | field3
//	zone   | location name |    | synopsis zone
//
// Lines that are empty or start with '#' carry no data. Lines with fewer than
// four fields are treated as noise and skipped without error.
//
// # Marine Zone Prefixes
//
// A zone is marine when its code starts with one of:
//
//	ANZ  Atlantic coastal waters (north)
//	AMZ  Atlantic coastal waters (south)
//	GMZ  Gulf of Mexico
//	PMZ  Pacific coastal waters
//	OZ   offshore
//	HZ   high seas
//
// Land zones (e.g. "CAZ050") are dropped.
//
// # Synopsis Zone
//
// The synopsis zone is taken literally from field 3. Whether that column
// always names the zone referenced by the marine synopsis has not been
// verified against the live file; downstream consumers should treat it as a
// hint, not a guarantee.
package domain
