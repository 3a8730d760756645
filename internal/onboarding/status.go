package onboarding

// StatusKind tells an error notice from a success notice
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusError
	StatusSuccess
)

var statusKindNames = map[StatusKind]string{
	StatusNone:    "none",
	StatusError:   "error",
	StatusSuccess: "success",
}

func (k StatusKind) String() string {
	if name, ok := statusKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name in JSON output
func (k StatusKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SuccessMessage is shown after the display accepted a configuration
const SuccessMessage = "Configuration sent to the LED matrix"

// Status is the single message shown to the user. The zero value means no
// message.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

func errorStatus(msg string) Status {
	return Status{Kind: StatusError, Message: msg}
}

func successStatus(msg string) Status {
	return Status{Kind: StatusSuccess, Message: msg}
}

// IsError reports whether the status is an error notice
func (s Status) IsError() bool { return s.Kind == StatusError }

// IsSuccess reports whether the status is a success notice
func (s Status) IsSuccess() bool { return s.Kind == StatusSuccess }

// Empty reports whether no message is active
func (s Status) Empty() bool { return s.Kind == StatusNone }
