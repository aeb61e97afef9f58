package environment

import (
	"context"
	"strings"
)

// ciVariables are set by common CI services. Their mere presence (with a
// value other than "false") marks the process as running under CI.
var ciVariables = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"BUILD_NUMBER",
	"RUN_ID",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"BUILDKITE",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_URL",
	"TEAMCITY_VERSION",
	"TF_BUILD",
	"BITBUCKET_BUILD_NUMBER",
	"CODEBUILD_BUILD_ID",
	"DRONE",
	"NETLIFY",
	"VERCEL",
}

// IsCI reports whether the environment looks like a continuous integration run.
func IsCI(ctx context.Context, env Provider) bool {
	for _, name := range ciVariables {
		value, found := env.Get(ctx, name)
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(value), "false") {
			continue
		}
		return true
	}
	return false
}
