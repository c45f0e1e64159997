package config

import (
	"os"
	"path/filepath"
	"testing"

	"scaph2cc/internal/aggregate"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	content := `appId: myapp1
branch: main
processName: stress-ng
match: exact
logLevel: debug
junitFile: out/junit.xml
metricsFile: out/scaph2cc.prom
`
	c, err := Parse([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "myapp1", c.AppID)
	assert.Equal(t, "main", c.Branch)
	assert.Equal(t, "stress-ng", c.ProcessName)
	assert.Equal(t, aggregate.MatchExact, c.Match)
	assert.Equal(t, LevelDebug, c.LogLevel)
	assert.Equal(t, "out/junit.xml", c.JUnitFile)
	assert.Equal(t, "out/scaph2cc.prom", c.MetricsFile)
	assert.Empty(t, c.CommitSHA)
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte("appId: x\n"))
	require.NoError(t, err)
	assert.Equal(t, aggregate.MatchSuffix, c.Match)
	assert.Equal(t, LevelInfo, c.LogLevel)
	assert.Equal(t, Default().Match, c.Match)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "bad yaml", content: "appId: [unclosed", errText: "invalid YAML"},
		{name: "unknown match", content: "match: regex\n", errText: "unknown match policy 'regex'"},
		{name: "unknown log level", content: "logLevel: trace\n", errText: "unknown log level 'trace'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, DefaultPath)

	c, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	_, err = Load(missing, false)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(missing, []byte("branch: develop\n"), 0644))
	c, err = Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, "develop", c.Branch)

	require.NoError(t, os.WriteFile(missing, []byte("match: nope\n"), 0644))
	_, err = Load(missing, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}

// Feature: scaph2cc, Property 5: Config Round Trip
// Serializing a valid config and parsing it back yields the same config.
func TestConfig_YAMLRoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("toYAML then parse is identity", prop.ForAll(
		func(appID, branch, process string, exact bool) bool {
			c := Config{AppID: appID, Branch: branch, ProcessName: process, Match: aggregate.MatchSuffix, LogLevel: LevelInfo}
			if exact {
				c.Match = aggregate.MatchExact
			}

			data, err := c.ToYAML()
			if err != nil {
				return false
			}
			parsed, err := Parse(data)
			if err != nil {
				return false
			}
			return parsed == c
		},
		gen.Identifier(),
		gen.AlphaString(),
		gen.Identifier(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
