package telemetry

// EventType is the last path segment of the collection endpoint.
type EventType string

const (
	EventTypeProject EventType = "project"
	EventTypeDevice  EventType = "device"
)

// ProjectReport is sent at most once per day for each project directory.
type ProjectReport struct {
	// Previous is the date of the last project report, nil on the first one.
	Previous *string `json:"previous"`
	// Fields counts fields per type tag, with "unknown" for untagged fields.
	Fields map[string]int `json:"fields"`
	// Lists is the number of lists in the project.
	Lists int `json:"lists"`
	// Versions maps forge modules to the version the project requires.
	Versions map[string]string `json:"versions"`
	// Database is the database provider, e.g. "postgresql".
	Database string `json:"database"`
}

// DeviceReport is sent at most once per day for the machine.
type DeviceReport struct {
	Previous *string `json:"previous"`
	// OS is the platform identifier, e.g. "linux" or "darwin".
	OS string `json:"os"`
	// Node is the runtime release, e.g. "1.26". The key name is what the
	// collection endpoint expects.
	Node string `json:"node"`
}
