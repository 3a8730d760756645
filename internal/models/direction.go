package models

// Direction is a route/destination pairing served from a stop area
type Direction struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Line LineRef `json:"line"`
}

// RouteResponse is the route block of a direction entry
type RouteResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DirectionResponse represents the raw JSON of one direction entry
type DirectionResponse struct {
	Route RouteResponse `json:"route"`
	Line  LineResponse  `json:"line"`
}

// ToDirection converts the raw response to a Direction.
// The direction ID is the route ID, which is what the set endpoint expects.
func (r *DirectionResponse) ToDirection() *Direction {
	return &Direction{
		ID:   r.Route.ID,
		Name: r.Route.Name,
		Line: r.Line.ToLineRef(),
	}
}

// FindStopArea returns the stop area with the given ID, or nil
func FindStopArea(stops []StopArea, id string) *StopArea {
	for i := range stops {
		if stops[i].ID == id {
			s := stops[i]
			return &s
		}
	}
	return nil
}

// FindDirection returns the direction with the given ID, or nil
func FindDirection(dirs []Direction, id string) *Direction {
	for i := range dirs {
		if dirs[i].ID == id {
			d := dirs[i]
			return &d
		}
	}
	return nil
}
