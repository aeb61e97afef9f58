// Package latest is the current telemetry record (schema v3).
package latest

import (
	"encoding/json"
	"time"

	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
)

const Version = "3"

type Device struct {
	// LastSentDate is the UTC calendar date (YYYY-MM-DD) of the last device report.
	LastSentDate *string `json:"lastSentDate"`
}

type Project struct {
	LastSentDate string `json:"lastSentDate"`
}

// Record is the persisted telemetry state.
type Record struct {
	// InformedAt is nil until the disclosure has been shown.
	InformedAt *time.Time          `json:"informedAt"`
	Device     Device              `json:"device"`
	Projects   map[string]*Project `json:"projects"`
}

// NewRecord returns the zero-value record used when nothing is stored yet.
func NewRecord() *Record {
	return &Record{Projects: map[string]*Project{}}
}

// Value is the stored telemetry value: unset, opted out, or a record.
type Value struct {
	State  types.State
	Record *Record
}

// Unset is the value of a user who never configured telemetry.
var Unset = Value{State: types.Unset}

// OptedOut is the value of a user who disabled telemetry.
var OptedOut = Value{State: types.OptedOut}

// RecordOrDefault returns the stored record, or a fresh one when unset.
// It returns nil for an opted-out value.
func (v Value) RecordOrDefault() *Record {
	switch v.State {
	case types.OptedOut:
		return nil
	case types.Configured:
		if v.Record != nil {
			return v.Record
		}
	}
	return NewRecord()
}

// ParseValue classifies and decodes a raw stored value.
func ParseValue(raw json.RawMessage, found bool) Value {
	switch types.Classify(raw, found) {
	case types.OptedOut:
		return OptedOut
	case types.Configured:
		record, err := Parse(raw)
		if err != nil {
			return Unset
		}
		return Value{State: types.Configured, Record: &record}
	default:
		return Unset
	}
}

// Parse reads a v3 record leniently. An unreadable informedAt counts as not
// informed, which forces the disclosure to be shown again.
func Parse(data []byte) (Record, error) {
	obj, err := types.Object(data)
	if err != nil {
		return Record{}, err
	}

	record := *NewRecord()

	if s := types.String(obj["informedAt"]); s != nil {
		if t, ok := types.ParseDate(*s); ok {
			record.InformedAt = &t
		}
	}

	if device, err := types.Object(obj["device"]); err == nil {
		record.Device.LastSentDate = types.String(device["lastSentDate"])
	}

	var projects map[string]json.RawMessage
	if json.Unmarshal(obj["projects"], &projects) == nil {
		for key, raw := range projects {
			project, err := types.Object(raw)
			if err != nil {
				continue
			}
			if date := types.String(project["lastSentDate"]); date != nil {
				record.Projects[key] = &Project{LastSentDate: *date}
			}
		}
	}

	return record, nil
}
