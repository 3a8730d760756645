package api

import (
	"net/url"
)

const (
	// BaseURL is the default address of the display controller's config API
	BaseURL = "http://192.168.1.44:8080/api/v1"

	// EndpointStopAreas searches stop areas by name
	// Required params: filter
	EndpointStopAreas = "/stop_areas"

	// EndpointStopArea prefixes the per-stop-area endpoints
	EndpointStopArea = "/stop_area"
)

// DirectionsPath returns the path listing the directions of a stop area,
// e.g. /stop_area/SA1/directions
func DirectionsPath(stopAreaID string) string {
	return EndpointStopArea + "/" + url.PathEscape(stopAreaID) + "/directions"
}

// SetConfigurationPath returns the path that pushes a stop area and route to
// the display, e.g. /stop_area/SA1/route/R7/set
func SetConfigurationPath(stopAreaID, routeID string) string {
	return EndpointStopArea + "/" + url.PathEscape(stopAreaID) +
		"/route/" + url.PathEscape(routeID) + "/set"
}
