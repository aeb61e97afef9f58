// Package v2 moved consent to the top of the record and split the device out
// of the project map.
package v2

import (
	"encoding/json"

	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
)

const Version = "2"

type Device struct {
	LastSentDate *string `json:"lastSentDate"`
}

type Project struct {
	LastSentDate string `json:"lastSentDate"`
}

type Record struct {
	InformedAt *string            `json:"informedAt"`
	Device     Device             `json:"device"`
	Projects   map[string]Project `json:"projects"`
}

// Parse reads a v2 record leniently. Projects without a string lastSentDate
// are dropped.
func Parse(data []byte) (Record, error) {
	obj, err := types.Object(data)
	if err != nil {
		return Record{}, err
	}

	record := Record{
		InformedAt: types.String(obj["informedAt"]),
		Projects:   map[string]Project{},
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
				record.Projects[key] = Project{LastSentDate: *date}
			}
		}
	}

	return record, nil
}
