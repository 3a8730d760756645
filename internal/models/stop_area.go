package models

// DefaultLineColor is used for line badges when the API sends no style.
const DefaultLineColor = "#fb923c"

// LineRef is a transit line as shown on a badge
type LineRef struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Color string `json:"color"`
}

// StopArea is a named physical stop, possibly served by several lines
type StopArea struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Lines []LineRef `json:"lines"`
}

// LineStyle is the nested styling block of a line in API responses
type LineStyle struct {
	Color string `json:"color"`
}

// LineResponse represents a line as returned by the API
type LineResponse struct {
	ID    string     `json:"id"`
	Code  string     `json:"code"`
	Style *LineStyle `json:"style,omitempty"`
}

// ToLineRef flattens the nested style into a single color, falling back to
// DefaultLineColor when the style or its color is missing.
func (r *LineResponse) ToLineRef() LineRef {
	color := DefaultLineColor
	if r.Style != nil && r.Style.Color != "" {
		color = r.Style.Color
	}
	return LineRef{
		ID:    r.ID,
		Code:  r.Code,
		Color: color,
	}
}

// StopAreaResponse represents the raw JSON of one stop area search result
type StopAreaResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Lines []LineResponse `json:"lines"`
}

// ToStopArea converts the raw response to a StopArea
func (r *StopAreaResponse) ToStopArea() *StopArea {
	lines := make([]LineRef, 0, len(r.Lines))
	for i := range r.Lines {
		lines = append(lines, r.Lines[i].ToLineRef())
	}
	return &StopArea{
		ID:    r.ID,
		Name:  r.Name,
		Lines: lines,
	}
}

// VisibleLines returns at most max lines and the number left out.
func (s StopArea) VisibleLines(max int) ([]LineRef, int) {
	if max < 0 {
		max = 0
	}
	if len(s.Lines) <= max {
		return s.Lines, 0
	}
	return s.Lines[:max], len(s.Lines) - max
}
