package resolver

import (
	"testing"

	"scaph2cc/internal/config"
	"scaph2cc/internal/report"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Precedence(t *testing.T) {
	environ := []string{
		"SCAPH2CC_APP_ID=env-app",
		"CI_COMMIT_REF_NAME=feature/x",
		"CI_COMMIT_SHA=abc123",
		"CI_PIPELINE_URL=https://gitlab.example.com/p/-/pipelines/9?a=b",
	}
	cfg := config.Config{AppID: "conf-app", Branch: "conf-branch", CommitSHA: "conf-sha", PipelineURL: "conf-url"}

	result := Resolve(Flags{AppID: "flag-app"}, environ, cfg)
	require.True(t, result.Valid())

	assert.Equal(t, report.Context{
		AppID:       "flag-app",
		Branch:      "feature/x",
		CommitSHA:   "abc123",
		PipelineURL: "https://gitlab.example.com/p/-/pipelines/9?a=b",
	}, result.Context())

	assert.Equal(t, SourceFlag, result.Values[0].Source)
	assert.Equal(t, SourceEnv, result.Values[1].Source)
	assert.Equal(t, "CI_COMMIT_REF_NAME", result.Values[1].EnvVar)

	result = Resolve(Flags{}, nil, cfg)
	require.True(t, result.Valid())
	assert.Equal(t, report.Context{AppID: "conf-app", Branch: "conf-branch", CommitSHA: "conf-sha", PipelineURL: "conf-url"}, result.Context())
	for _, rv := range result.Values {
		assert.Equal(t, SourceConfig, rv.Source)
	}
}

func TestResolve_BranchVariableOrder(t *testing.T) {
	environ := []string{"CI_COMMIT_REF_NAME=ref", "CI_COMMIT_BRANCH=branch"}
	result := Resolve(Flags{}, environ, config.Config{})
	assert.Equal(t, "branch", result.Context().Branch)

	// Empty variables count as unset
	environ = []string{"CI_COMMIT_BRANCH=", "CI_COMMIT_REF_NAME=ref"}
	result = Resolve(Flags{}, environ, config.Config{})
	assert.Equal(t, "ref", result.Context().Branch)
}

func TestResolve_MissingCollectsAll(t *testing.T) {
	result := Resolve(Flags{Branch: "main"}, []string{"MALFORMED", "OTHER=1"}, config.Config{})

	require.False(t, result.Valid())
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "app-id: required but SCAPH2CC_APP_ID is not set", result.Errors[0].Error())
	assert.Equal(t, "commit-sha: required but CI_COMMIT_SHA is not set", result.Errors[1].Error())
	assert.Equal(t, "ci-pipeline-url: required but CI_PIPELINE_URL is not set", result.Errors[2].Error())
	assert.Equal(t, "branch: required but CI_COMMIT_BRANCH or CI_COMMIT_REF_NAME is not set", FormatMissing(FieldBranch))
}

func TestLookup(t *testing.T) {
	environ := []string{"A=1", "B=x=y", "C="}

	v, ok := Lookup(environ, "B")
	assert.True(t, ok)
	assert.Equal(t, "x=y", v)

	v, ok = Lookup(environ, "C")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = Lookup(environ, "D")
	assert.False(t, ok)
}

// Feature: scaph2cc, Property 6: Flag Precedence
// A non-empty flag value always wins over environment and config values.
func TestResolve_FlagPrecedence_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("flags override environment and config", prop.ForAll(
		func(flagValue, envValue, confValue string) bool {
			if flagValue == "" {
				return true
			}
			environ := []string{"CI_COMMIT_SHA=" + envValue}
			result := Resolve(Flags{CommitSHA: flagValue}, environ, config.Config{CommitSHA: confValue})
			return result.Context().CommitSHA == flagValue
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("environment overrides config", prop.ForAll(
		func(envValue, confValue string) bool {
			if envValue == "" {
				return true
			}
			environ := []string{"CI_PIPELINE_URL=" + envValue}
			result := Resolve(Flags{}, environ, config.Config{PipelineURL: confValue})
			return result.Context().PipelineURL == envValue
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
