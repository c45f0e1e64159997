// Package resolver resolves the build context of a run from command line
// values, CI environment variables and config file defaults.
package resolver

import (
	"fmt"
	"strings"

	"scaph2cc/internal/config"
	"scaph2cc/internal/report"
)

// Source describes where a resolved value came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceMissing Source = "missing"
)

// Field describes one context field and the environment variables it may come from.
type Field struct {
	Key     string   // Flag name, e.g. "commit-sha"
	EnvVars []string // Checked in order
}

// Context fields, in report order.
var (
	FieldAppID       = Field{Key: "app-id", EnvVars: []string{"SCAPH2CC_APP_ID"}}
	FieldBranch      = Field{Key: "branch", EnvVars: []string{"CI_COMMIT_BRANCH", "CI_COMMIT_REF_NAME"}}
	FieldCommitSHA   = Field{Key: "commit-sha", EnvVars: []string{"CI_COMMIT_SHA"}}
	FieldPipelineURL = Field{Key: "ci-pipeline-url", EnvVars: []string{"CI_PIPELINE_URL"}}
)

// ResolvedValue represents a resolved context value.
type ResolvedValue struct {
	Field  Field
	Value  string
	Source Source
	EnvVar string // Variable the value came from, if Source is SourceEnv
}

// Present reports whether the value was found anywhere.
func (rv ResolvedValue) Present() bool {
	return rv.Source != SourceMissing
}

// MissingError reports a required context field that could not be resolved.
type MissingError struct {
	Field Field
}

func (e MissingError) Error() string {
	return FormatMissing(e.Field)
}

// FormatMissing formats the error for an unresolved field.
// Format: "{key}: required but {ENV_VAR} is not set"
func FormatMissing(f Field) string {
	return fmt.Sprintf("%s: required but %s is not set", f.Key, strings.Join(f.EnvVars, " or "))
}

// Flags are the context values given on the command line; empty means unset.
type Flags struct {
	AppID       string
	Branch      string
	CommitSHA   string
	PipelineURL string
}

// Result contains all resolution outcomes.
type Result struct {
	Values []ResolvedValue
	Errors []MissingError
}

// Valid reports whether every field was resolved.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Context returns the resolved build context.
func (r Result) Context() report.Context {
	var ctx report.Context
	for _, rv := range r.Values {
		switch rv.Field.Key {
		case FieldAppID.Key:
			ctx.AppID = rv.Value
		case FieldBranch.Key:
			ctx.Branch = rv.Value
		case FieldCommitSHA.Key:
			ctx.CommitSHA = rv.Value
		case FieldPipelineURL.Key:
			ctx.PipelineURL = rv.Value
		}
	}
	return ctx
}

// Resolve looks up every context field by precedence flag > environment > config.
// It collects all missing fields rather than stopping at the first one.
func Resolve(flags Flags, environ []string, cfg config.Config) Result {
	envMap := parseEnviron(environ)

	candidates := []struct {
		field Field
		flag  string
		conf  string
	}{
		{FieldAppID, flags.AppID, cfg.AppID},
		{FieldBranch, flags.Branch, cfg.Branch},
		{FieldCommitSHA, flags.CommitSHA, cfg.CommitSHA},
		{FieldPipelineURL, flags.PipelineURL, cfg.PipelineURL},
	}

	var result Result
	for _, c := range candidates {
		rv := resolveField(c.field, c.flag, envMap, c.conf)
		result.Values = append(result.Values, rv)
		if !rv.Present() {
			result.Errors = append(result.Errors, MissingError{Field: c.field})
		}
	}
	return result
}

func resolveField(f Field, flagValue string, envMap map[string]string, confValue string) ResolvedValue {
	if flagValue != "" {
		return ResolvedValue{Field: f, Value: flagValue, Source: SourceFlag}
	}
	for _, envVar := range f.EnvVars {
		if v, ok := envMap[envVar]; ok && v != "" {
			return ResolvedValue{Field: f, Value: v, Source: SourceEnv, EnvVar: envVar}
		}
	}
	if confValue != "" {
		return ResolvedValue{Field: f, Value: confValue, Source: SourceConfig}
	}
	return ResolvedValue{Field: f, Source: SourceMissing}
}

// Lookup returns the value of name in an environ slice.
func Lookup(environ []string, name string) (string, bool) {
	v, ok := parseEnviron(environ)[name]
	return v, ok
}

// parseEnviron converts an environ slice (["KEY=VALUE", ...]) into a map.
// Values may contain "="; entries without "=" are skipped.
func parseEnviron(environ []string) map[string]string {
	result := make(map[string]string)
	for _, entry := range environ {
		idx := strings.Index(entry, "=")
		if idx == -1 {
			continue
		}
		result[entry[:idx]] = entry[idx+1:]
	}
	return result
}
