// Package v1 is the original telemetry record, where consent was tracked per
// project and a synthetic "default" project stood in for the device.
package v1

import (
	"encoding/json"

	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
)

const Version = "1"

// DefaultProject is the synthetic project key that held the device consent.
const DefaultProject = "default"

type Device struct {
	LastSentDate *string `json:"lastSentDate,omitempty"`
	InformedAt   *string `json:"informedAt,omitempty"`
}

type Project struct {
	LastSentDate *string `json:"lastSentDate,omitempty"`
	InformedAt   *string `json:"informedAt,omitempty"`
}

type Record struct {
	Device   Device             `json:"device"`
	Projects map[string]Project `json:"projects"`
}

// Parse reads a v1 record. Members that are missing or of the wrong type are
// left empty; only a non-object document is an error.
func Parse(data []byte) (Record, error) {
	obj, err := types.Object(data)
	if err != nil {
		return Record{}, err
	}

	record := Record{Projects: map[string]Project{}}

	if device, err := types.Object(obj["device"]); err == nil {
		record.Device = Device{
			LastSentDate: types.String(device["lastSentDate"]),
			InformedAt:   types.String(device["informedAt"]),
		}
	}

	var projects map[string]json.RawMessage
	if json.Unmarshal(obj["projects"], &projects) == nil {
		for key, raw := range projects {
			project, err := types.Object(raw)
			if err != nil {
				continue
			}
			record.Projects[key] = Project{
				LastSentDate: types.String(project["lastSentDate"]),
				InformedAt:   types.String(project["informedAt"]),
			}
		}
	}

	return record, nil
}
