package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogDefinition = `
db:
  provider: postgresql
lists:
  Post:
    fields:
      title:
        type: text
        required: true
      content:
        type: document
      author:
        type: relationship
      id: {}
  User:
    fields:
      name:
        type: text
      avatar: {}
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(blogDefinition), 0o644))

	def, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgresql", def.DB.Provider)
	assert.Equal(t, []string{"Post", "User"}, def.ListNames())
	assert.Len(t, def.Lists["Post"].Fields, 4)
	assert.True(t, def.Lists["Post"].Fields["title"].Required)

	name, ok := def.Lists["Post"].Fields["author"].TelemetryTypeName()
	assert.True(t, ok)
	assert.Equal(t, "relationship", name)

	_, ok = def.Lists["User"].Fields["avatar"].TelemetryTypeName()
	assert.False(t, ok)

	require.NoError(t, def.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("lists: [unterminated"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr []string
	}{
		{
			name:    "missing provider and lists",
			yaml:    `{}`,
			wantErr: []string{"db.provider is required", "at least one list is required"},
		},
		{
			name: "unsupported provider",
			yaml: `
db:
  provider: oracle
lists:
  Post:
    fields:
      title: {type: text}
`,
			wantErr: []string{`db.provider "oracle" is not supported`},
		},
		{
			name: "list without fields",
			yaml: `
db:
  provider: sqlite
lists:
  Empty: {}
`,
			wantErr: []string{"list Empty has no fields"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			err = def.Validate()
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
