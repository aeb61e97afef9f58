package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCI(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "empty environment", env: map[string]string{}, want: false},
		{name: "generic CI flag", env: map[string]string{"CI": "true"}, want: true},
		{name: "CI set to 1", env: map[string]string{"CI": "1"}, want: true},
		{name: "CI explicitly false", env: map[string]string{"CI": "false"}, want: false},
		{name: "github actions", env: map[string]string{"GITHUB_ACTIONS": "true"}, want: true},
		{name: "jenkins", env: map[string]string{"JENKINS_URL": "https://ci.example.com"}, want: true},
		{name: "unrelated variable", env: map[string]string{"HOME": "/home/me"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCI(t.Context(), NewKeyValueProvider(tt.env)))
		})
	}
}
