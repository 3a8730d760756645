package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WritePrettyJSON re-indents a raw API response
func WritePrettyJSON(w io.Writer, data []byte) error {
	var pretty any
	if err := json.Unmarshal(data, &pretty); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return WriteJSON(w, pretty)
}
