package v2

import (
	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
	previous "github.com/forge-dev/forge/pkg/telemetry/schema/v1"
)

// UpgradeIfNeeded converts a v1 record. Consent is cleared because the
// disclosure changed, the synthetic default project is dropped, and projects
// whose lastSentDate is not a valid date are dropped. Other values are
// returned unchanged.
func UpgradeIfNeeded(c any) any {
	old, ok := c.(previous.Record)
	if !ok {
		return c
	}

	record := Record{
		InformedAt: nil,
		Device:     Device{LastSentDate: old.Device.LastSentDate},
		Projects:   map[string]Project{},
	}

	for path, project := range old.Projects {
		if path == previous.DefaultProject {
			continue
		}
		if project.LastSentDate == nil || !types.IsValidDate(*project.LastSentDate) {
			continue
		}
		record.Projects[path] = Project{LastSentDate: *project.LastSentDate}
	}

	return record
}
