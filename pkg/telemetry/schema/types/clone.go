package types

import (
	"encoding/json"
	"fmt"
)

// CloneThroughJSON copies oldValue into newValue by round-tripping through
// JSON, so fields with matching tags carry forward between schema versions.
func CloneThroughJSON(oldValue, newValue any) error {
	o, err := json.Marshal(oldValue)
	if err != nil {
		return fmt.Errorf("marshalling old: %w", err)
	}
	if err := json.Unmarshal(o, newValue); err != nil {
		return fmt.Errorf("unmarshalling new: %w", err)
	}
	return nil
}
