package confstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintShouldRun(t *testing.T) {
	tests := []struct {
		rng      string
		previous string
		current  string
		want     bool
	}{
		{rng: ">=2.0.0", previous: "v0.0.0", current: "v2.0.0", want: true},
		{rng: ">=2.0.0", previous: "v1.4.0", current: "v6.1.0", want: true},
		{rng: ">=2.0.0", previous: "v2.0.0", current: "v6.1.0", want: false},
		{rng: ">=2.0.0", previous: "v1.0.0", current: "v1.9.9", want: false},
		{rng: "^2.0.0", previous: "v1.0.0", current: "v2.3.0", want: true},
		{rng: "^2.0.0", previous: "v1.0.0", current: "v3.0.0", want: false},
		{rng: "~2.1.0", previous: "v2.0.5", current: "v2.1.4", want: true},
		{rng: "2.0.0", previous: "v1.0.0", current: "v4.0.0", want: true},
		{rng: "2.0.0", previous: "v2.0.0", current: "v4.0.0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.rng+" "+tt.previous+"->"+tt.current, func(t *testing.T) {
			c, err := parseConstraint(tt.rng)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.shouldRun(tt.previous, tt.current))
		})
	}
}

func TestParseConstraintInvalid(t *testing.T) {
	_, err := parseConstraint(">=two")
	require.Error(t, err)

	_, err = parseConstraint("latest")
	require.Error(t, err)
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen_RunsMigrationsInOrderOnce(t *testing.T) {
	path := writeDoc(t, `{"__internal__":{"migrations":{"version":"1.0.0"}},"value":1}`)

	var ran []string
	migrations := []Migration{
		{Range: ">=2.0.0", Apply: func(s *Store) error { ran = append(ran, "v2"); return s.Set("value", 2) }},
		{Range: ">=5.0.0", Apply: func(s *Store) error { ran = append(ran, "v5"); return s.Set("value", 5) }},
	}

	store, err := Open(path, "5.0.0", migrations)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2", "v5"}, ran)

	var value int
	require.NoError(t, store.Get("value", &value))
	assert.Equal(t, 5, value)

	ran = nil
	_, err = Open(path, "5.0.0", migrations)
	require.NoError(t, err)
	assert.Empty(t, ran, "migrations must not run again for the same version")
}

func TestOpen_SkipsMigrationsForDevelopmentBuilds(t *testing.T) {
	path := writeDoc(t, `{"value":1}`)

	called := false
	_, err := Open(path, "dev", []Migration{
		{Range: ">=2.0.0", Apply: func(*Store) error { called = true; return nil }},
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestOpen_FailedMigrationRestoresDocument(t *testing.T) {
	path := writeDoc(t, `{"value":1}`)

	_, err := Open(path, "2.0.0", []Migration{
		{Range: ">=2.0.0", Apply: func(s *Store) error {
			s.doc["value"] = []byte("99")
			return errors.New("boom")
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":1}`, string(data))
}

func TestOpen_DoesNotCreateFileForFreshUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	_, err := Open(path, "6.0.0", []Migration{
		{Range: ">=2.0.0", Apply: func(*Store) error { return nil }},
	})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
