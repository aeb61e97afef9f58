package latest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-dev/forge/pkg/telemetry/schema/types"
	previous "github.com/forge-dev/forge/pkg/telemetry/schema/v2"
)

func TestUpgrade_ResetsInformedAt(t *testing.T) {
	informed := "2023-04-01T09:00:00.000Z"
	device := "2023-04-02"
	old := previous.Record{
		InformedAt: &informed,
		Device:     previous.Device{LastSentDate: &device},
		Projects:   map[string]previous.Project{"/app": {LastSentDate: "2023-04-02"}},
	}

	upgraded, ok := UpgradeIfNeeded(old).(Record)
	require.True(t, ok)

	assert.Nil(t, upgraded.InformedAt)
	require.NotNil(t, upgraded.Device.LastSentDate)
	assert.Equal(t, "2023-04-02", *upgraded.Device.LastSentDate)
	require.Contains(t, upgraded.Projects, "/app")
	assert.Equal(t, "2023-04-02", upgraded.Projects["/app"].LastSentDate)
}

func TestUpgrade_PassesThroughOtherValues(t *testing.T) {
	assert.Nil(t, UpgradeIfNeeded(nil))
	assert.Equal(t, false, UpgradeIfNeeded(false))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, Unset, ParseValue(nil, false))
	assert.Equal(t, OptedOut, ParseValue(json.RawMessage("false"), true))
	assert.Equal(t, Unset, ParseValue(json.RawMessage("null"), true))

	value := ParseValue(json.RawMessage(`{
		"informedAt": "2024-01-01T10:00:00Z",
		"device": {"lastSentDate": "2024-01-01"},
		"projects": {"/app": {"lastSentDate": "2024-01-01"}, "/bad": {"lastSentDate": 3}}
	}`), true)
	require.Equal(t, types.Configured, value.State)
	require.NotNil(t, value.Record.InformedAt)
	assert.True(t, value.Record.InformedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-01", *value.Record.Device.LastSentDate)
	assert.Len(t, value.Record.Projects, 1)
}

func TestParse_InvalidInformedAtMeansNotInformed(t *testing.T) {
	record, err := Parse([]byte(`{"informedAt": "yesterday", "device": {}, "projects": {}}`))
	require.NoError(t, err)
	assert.Nil(t, record.InformedAt)
}

func TestRecordOrDefault(t *testing.T) {
	assert.Nil(t, OptedOut.RecordOrDefault())

	fresh := Unset.RecordOrDefault()
	require.NotNil(t, fresh)
	assert.Nil(t, fresh.InformedAt)
	assert.Nil(t, fresh.Device.LastSentDate)
	assert.Empty(t, fresh.Projects)
}

func TestRecordJSONShape(t *testing.T) {
	data, err := json.Marshal(NewRecord())
	require.NoError(t, err)
	assert.JSONEq(t, `{"informedAt":null,"device":{"lastSentDate":null},"projects":{}}`, string(data))
}
