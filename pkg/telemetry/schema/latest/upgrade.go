package latest

import (
	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
	previous "github.com/forge-dev/forge/pkg/telemetry/schema/v2"
)

// UpgradeIfNeeded carries a v2 record forward and clears informedAt, since the
// v3 disclosure lists more collected data. Other values are returned unchanged.
func UpgradeIfNeeded(c any) any {
	old, ok := c.(previous.Record)
	if !ok {
		return c
	}

	old.InformedAt = nil

	record := *NewRecord()
	if err := types.CloneThroughJSON(old, &record); err != nil {
		return c
	}
	if record.Projects == nil {
		record.Projects = map[string]*Project{}
	}
	record.InformedAt = nil
	return record
}
