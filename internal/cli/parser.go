package cli

import (
	"errors"
	"fmt"
	"strings"
)

// Usage is printed by --help and on usage errors.
const Usage = `usage: scaph2cc -i <scaphandre.json> -o <result.json> -p <process> [flags]

flags:
  -i, --input-file <path>        Scaphandre JSON report to read
  -o, --output-file <path>       CarbonCrush JSON report to write
  -p, --process-name <name>      process executable name or path
  -a, --app-id <id>              application id ($SCAPH2CC_APP_ID)
  -b, --branch <name>            branch ($CI_COMMIT_BRANCH, $CI_COMMIT_REF_NAME)
  -c, --commit-sha <sha>         commit identifier ($CI_COMMIT_SHA)
  -u, --ci-pipeline-url <url>    CI pipeline URL ($CI_PIPELINE_URL)
  -j, --junit-file <path>        also write a JUnit XML report
      --metrics-file <path>      also write a Prometheus textfile
      --config <path>            defaults file (default .scaph2cc.yaml)
      --match <suffix|exact>     process name matching (default suffix)
      --log-level <level>        debug, info or error (default info)
  -q, --quiet                    only log errors
      --json                     print the report to stdout
  -h, --help                     show this help
  -V, --version                  show version
`

// ErrMissingFlagValue is returned when a flag requires a value but none is provided
var ErrMissingFlagValue = errors.New("flag requires a value")

// ErrUnknownFlag is returned for flags the command doesn't define
var ErrUnknownFlag = errors.New("unknown flag")

// ErrUnexpectedArgument is returned for positional arguments
var ErrUnexpectedArgument = errors.New("unexpected argument")

// ErrMissingRequired is returned when a required flag is absent
var ErrMissingRequired = errors.New("missing required flag")

// Command represents the parsed CLI input
type Command struct {
	InputFile   string // --input-file <path>
	OutputFile  string // --output-file <path>
	ProcessName string // --process-name <name>

	// Build context flags, resolved further from the environment
	AppID       string // --app-id <id>
	Branch      string // --branch <name>
	CommitSHA   string // --commit-sha <sha>
	PipelineURL string // --ci-pipeline-url <url>

	// Secondary outputs
	JUnitFile   string // --junit-file <path>
	MetricsFile string // --metrics-file <path>
	JSONOutput  bool   // --json

	ConfigPath string // --config <path>
	Match      string // --match <policy>
	LogLevel   string // --log-level <level>
	Quiet      bool   // --quiet

	Help    bool // --help
	Version bool // --version
}

// valueFlags maps every flag taking a value, long and short, to its destination.
func (c *Command) valueFlags() map[string]*string {
	return map[string]*string{
		"input-file":      &c.InputFile,
		"i":               &c.InputFile,
		"output-file":     &c.OutputFile,
		"o":               &c.OutputFile,
		"process-name":    &c.ProcessName,
		"p":               &c.ProcessName,
		"app-id":          &c.AppID,
		"a":               &c.AppID,
		"branch":          &c.Branch,
		"b":               &c.Branch,
		"commit-sha":      &c.CommitSHA,
		"c":               &c.CommitSHA,
		"ci-pipeline-url": &c.PipelineURL,
		"u":               &c.PipelineURL,
		"junit-file":      &c.JUnitFile,
		"j":               &c.JUnitFile,
		"metrics-file":    &c.MetricsFile,
		"config":          &c.ConfigPath,
		"match":           &c.Match,
		"log-level":       &c.LogLevel,
	}
}

// boolFlags maps every switch, long and short, to its destination.
func (c *Command) boolFlags() map[string]*bool {
	return map[string]*bool{
		"json":    &c.JSONOutput,
		"quiet":   &c.Quiet,
		"q":       &c.Quiet,
		"help":    &c.Help,
		"h":       &c.Help,
		"version": &c.Version,
		"V":       &c.Version,
	}
}

// ParseArgs parses CLI arguments into a Command.
// It expects args to be os.Args[1:] (excluding the program name).
// Flags accept "--flag value", "--flag=value", "-f value" and "-f=value".
func ParseArgs(args []string) (Command, error) {
	var cmd Command
	values := cmd.valueFlags()
	switches := cmd.boolFlags()

	for i := 0; i < len(args); i++ {
		arg := args[i]

		name, inline, hasInline, ok := splitFlag(arg)
		if !ok {
			return Command{}, fmt.Errorf("%w: %s", ErrUnexpectedArgument, arg)
		}

		if dst, isValue := values[name]; isValue {
			if hasInline {
				*dst = inline
				continue
			}
			if i+1 >= len(args) {
				return Command{}, fmt.Errorf("%w: %s", ErrMissingFlagValue, arg)
			}
			i++
			*dst = args[i]
			continue
		}

		if dst, isSwitch := switches[name]; isSwitch {
			if hasInline {
				return Command{}, fmt.Errorf("%w: %s does not take a value", ErrUnexpectedArgument, arg)
			}
			*dst = true
			continue
		}

		return Command{}, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
	}

	// Help and version need nothing else
	if cmd.Help || cmd.Version {
		return cmd, nil
	}

	if missing := cmd.missingRequired(); len(missing) > 0 {
		return Command{}, fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	return cmd, nil
}

// missingRequired lists the required flags left empty.
// The process name may still come from the config file, so it is checked by the caller.
func (c Command) missingRequired() []string {
	var missing []string
	if c.InputFile == "" {
		missing = append(missing, "--input-file")
	}
	if c.OutputFile == "" {
		missing = append(missing, "--output-file")
	}
	return missing
}

// splitFlag splits "--name=value" into its parts.
// ok is false when arg is not a flag. Single-dash flags are one letter,
// double-dash flags are longer names.
func splitFlag(arg string) (name, value string, hasValue, ok bool) {
	var long bool
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name, long = arg[2:], true
	case strings.HasPrefix(arg, "-") && len(arg) > 1 && !strings.HasPrefix(arg, "--"):
		name = arg[1:]
	default:
		return "", "", false, false
	}

	if idx := strings.Index(name, "="); idx != -1 {
		name, value, hasValue = name[:idx], name[idx+1:], true
	}

	// "--i" and "-input-file" are not accepted spellings
	if long != (len(name) > 1) {
		return "", "", false, true
	}
	return name, value, hasValue, true
}
