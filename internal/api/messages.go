package api

import "fmt"

// Operation identifies one of the three controller API calls for user-facing
// error messages.
type Operation int

const (
	OpSearchStopAreas Operation = iota
	OpListDirections
	OpSetConfiguration
)

var operationMessages = map[Operation]struct {
	withStatus string
	generic    string
}{
	OpSearchStopAreas:  {"Error loading stops (%d)", "Error loading stops"},
	OpListDirections:   {"Error loading directions (%d)", "Error loading directions"},
	OpSetConfiguration: {"Error sending configuration (%d)", "Error sending configuration to the matrix"},
}

func (op Operation) String() string {
	switch op {
	case OpSearchStopAreas:
		return "search"
	case OpListDirections:
		return "directions"
	case OpSetConfiguration:
		return "set"
	}
	return fmt.Sprintf("operation(%d)", int(op))
}

// Describe turns an error from op into the message shown to the user.
// HTTP failures embed the status code; anything else gets the operation's
// generic message.
func Describe(op Operation, err error) string {
	if err == nil {
		return ""
	}
	msgs, ok := operationMessages[op]
	if !ok {
		return err.Error()
	}
	if code := StatusCode(err); code != 0 {
		return fmt.Sprintf(msgs.withStatus, code)
	}
	return msgs.generic
}
