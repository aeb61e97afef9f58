package telemetry

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-dev/forge/pkg/telemetry/schema"
	"github.com/forge-dev/forge/pkg/telemetry/schema/latest"
)

func TestGetStatus(t *testing.T) {
	t.Run("uninitialized", func(t *testing.T) {
		report := GetStatus(newMemStore())

		assert.Equal(t, StatusUninitialized, report.Status)
		assert.Nil(t, report.InformedAt)
		assert.Empty(t, report.Projects)
	})

	t.Run("disabled", func(t *testing.T) {
		report := GetStatus(newMemStoreWith(t, `false`))

		assert.Equal(t, StatusDisabled, report.Status)
	})

	t.Run("enabled", func(t *testing.T) {
		store := newMemStoreWith(t, `{
			"informedAt": "2024-01-01T12:00:00Z",
			"device": {"lastSentDate": "2024-01-03"},
			"projects": {"/work/blog": {"lastSentDate": "2024-01-02"}}
		}`)

		report := GetStatus(store)

		assert.Equal(t, StatusEnabled, report.Status)
		require.NotNil(t, report.InformedAt)
		assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), report.InformedAt.UTC())
		assert.Equal(t, "2024-01-03", *report.Device)
		assert.Equal(t, map[string]string{"/work/blog": "2024-01-02"}, report.Projects)
	})
}

func TestEnable(t *testing.T) {
	t.Run("clears opt-out", func(t *testing.T) {
		store := newMemStoreWith(t, `false`)

		require.NoError(t, Enable(store))

		_, found := store.Raw(schema.Key)
		assert.False(t, found)
	})

	t.Run("keeps existing record", func(t *testing.T) {
		store := newMemStoreWith(t, `{"informedAt": "2024-01-01T00:00:00Z", "device": {}, "projects": {}}`)

		require.NoError(t, Enable(store))

		assert.Equal(t, 0, store.writes)
		assert.NotNil(t, store.record(t).InformedAt)
	})

	t.Run("unset stays unset", func(t *testing.T) {
		store := newMemStore()

		require.NoError(t, Enable(store))

		assert.Equal(t, latest.Unset, schema.Load(store))
	})
}

func TestDisable(t *testing.T) {
	store := newMemStoreWith(t, `{"informedAt": "2024-01-01T00:00:00Z", "device": {}, "projects": {"/a": {"lastSentDate": "2024-01-01"}}}`)

	require.NoError(t, Disable(store))

	raw, found := store.Raw(schema.Key)
	require.True(t, found)
	assert.JSONEq(t, `false`, string(raw))
	assert.Equal(t, StatusDisabled, GetStatus(store).Status)
}

func TestDisable_StoreError(t *testing.T) {
	store := newMemStore()
	store.setErr = errDiskFull

	err := Disable(store)

	assert.ErrorIs(t, err, errDiskFull)
}

func TestReset(t *testing.T) {
	for _, initial := range []string{`false`, `{"informedAt": "2024-01-01T00:00:00Z"}`} {
		store := newMemStoreWith(t, initial)

		require.NoError(t, Reset(store))

		assert.Equal(t, StatusUninitialized, GetStatus(store).Status)
	}
}

func TestInform(t *testing.T) {
	now := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

	t.Run("records disclosure", func(t *testing.T) {
		store := newMemStore()
		var out bytes.Buffer

		require.NoError(t, Inform(store, &out, now))

		assert.Contains(t, out.String(), disclosureMarker)
		record := store.record(t)
		require.NotNil(t, record.InformedAt)
		assert.True(t, record.InformedAt.Equal(now))
	})

	t.Run("keeps send dates", func(t *testing.T) {
		store := newMemStoreWith(t, `{"informedAt": null, "device": {"lastSentDate": "2024-01-01"}, "projects": {"/a": {"lastSentDate": "2024-01-02"}}}`)

		require.NoError(t, Inform(store, &bytes.Buffer{}, now))

		record := store.record(t)
		assert.Equal(t, "2024-01-01", *record.Device.LastSentDate)
		assert.Equal(t, "2024-01-02", record.Projects["/a"].LastSentDate)
	})

	t.Run("opted out only prints", func(t *testing.T) {
		store := newMemStoreWith(t, `false`)
		var out bytes.Buffer

		require.NoError(t, Inform(store, &out, now))

		assert.Contains(t, out.String(), "forge telemetry disable")
		assert.Equal(t, 0, store.writes)
		assert.Equal(t, latest.OptedOut, schema.Load(store))
	})
}
