package telemetry

import (
	"strings"

	"github.com/forge-dev/forge/pkg/project"
)

// UnknownFieldType is the bucket for fields that carry no type tag.
const UnknownFieldType = "unknown"

// CountFieldTypes counts the fields of every list by type tag. Untagged
// fields are counted as unknown, except identifier fields whose path ends
// in "id".
func CountFieldTypes(lists map[string]project.List) map[string]int {
	counts := map[string]int{}
	for _, list := range lists {
		for path, field := range list.Fields {
			if typeName, ok := field.TelemetryTypeName(); ok {
				counts[typeName]++
				continue
			}
			if strings.HasSuffix(path, "id") {
				continue
			}
			counts[UnknownFieldType]++
		}
	}
	return counts
}

// BuildProjectReport assembles the project report.
func BuildProjectReport(previous *string, lists map[string]project.List, versions map[string]string, database string) ProjectReport {
	if versions == nil {
		versions = map[string]string{}
	}
	return ProjectReport{
		Previous: previous,
		Fields:   CountFieldTypes(lists),
		Lists:    len(lists),
		Versions: versions,
		Database: database,
	}
}

// BuildDeviceReport assembles the device report for the running process.
func BuildDeviceReport(previous *string) DeviceReport {
	osName, runtimeVersion := getSystemInfo()
	return DeviceReport{
		Previous: previous,
		OS:       osName,
		Node:     runtimeVersion,
	}
}
