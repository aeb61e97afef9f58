package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotObject = errors.New("value is not a JSON object")

// State is the top-level shape of the stored telemetry value.
type State int

const (
	// Unset means the user never configured telemetry.
	Unset State = iota
	// OptedOut means the stored value is the literal false.
	OptedOut
	// Configured means a record object is stored.
	Configured
)

func (s State) String() string {
	switch s {
	case OptedOut:
		return "opted-out"
	case Configured:
		return "configured"
	default:
		return "unset"
	}
}

// Classify inspects a raw stored value without decoding it.
// Anything that is neither false nor an object counts as Unset.
func Classify(raw json.RawMessage, found bool) State {
	if !found {
		return Unset
	}
	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(trimmed, []byte("false")):
		return OptedOut
	case len(trimmed) > 0 && trimmed[0] == '{':
		return Configured
	default:
		return Unset
	}
}

// Object decodes data as a JSON object, keeping member values raw.
func Object(data []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, ErrNotObject
	}
	return obj, nil
}

// String returns a pointer to the string held by raw, or nil when raw is
// missing, null or of another type.
func String(raw json.RawMessage) *string {
	if raw == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// dateLayouts are the shapes accepted as a calendar date or timestamp.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
}

// ParseDate parses s as an ISO calendar date or timestamp.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValidDate reports whether s parses as an ISO calendar date or timestamp.
func IsValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// Equal reports whether two JSON documents are identical once compacted.
func Equal(a, b []byte) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
