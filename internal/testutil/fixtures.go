package testutil

// Sample JSON responses for API testing

// SampleStopAreasResponse is a stop area search result for "Mussonville"
const SampleStopAreasResponse = `[
	{
		"id": "stop_area:TBM:SA:MUSSO",
		"name": "Parc de Mussonville",
		"lines": [
			{"id": "line:TBM:B", "code": "B", "style": {"color": "#d6006e"}},
			{"id": "line:TBM:35", "code": "35"}
		]
	}
]`

// SampleMultipleStopAreasResponse has two stop areas, one with many lines
const SampleMultipleStopAreasResponse = `[
	{
		"id": "SA1",
		"name": "Quinconces",
		"lines": [
			{"id": "line:A", "code": "A", "style": {"color": "#81197f"}},
			{"id": "line:B", "code": "B", "style": {"color": "#d6006e"}},
			{"id": "line:C", "code": "C", "style": {"color": "#da6ba6"}},
			{"id": "line:D", "code": "D", "style": {"color": "#8b5a9f"}},
			{"id": "line:4", "code": "4"},
			{"id": "line:15", "code": "15"}
		]
	},
	{
		"id": "SA2",
		"name": "Quinconces Fleuve",
		"lines": []
	}
]`

// SampleDirectionsResponse lists two directions from a stop area
const SampleDirectionsResponse = `[
	{
		"route": {"id": "R7", "name": "Pessac Centre"},
		"line": {"id": "line:B", "code": "B", "style": {"color": "#d6006e"}}
	},
	{
		"route": {"id": "R8", "name": "Berges de la Garonne"},
		"line": {"id": "line:B", "code": "B", "style": {"color": "#d6006e"}}
	}
]`

// SampleEmptyListResponse is an empty JSON array
const SampleEmptyListResponse = `[]`

// SampleErrorResponse is a sample error response
const SampleErrorResponse = `{
	"error": {
		"code": "STOP_AREA_NOT_FOUND",
		"message": "Stop area not found"
	}
}`
