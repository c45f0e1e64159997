// Command scaph2cc converts a Scaphandre JSON report into a CarbonCrush
// energy report for one process, tagged with its build context.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"scaph2cc/internal/aggregate"
	"scaph2cc/internal/cli"
	"scaph2cc/internal/config"
	"scaph2cc/internal/junit"
	"scaph2cc/internal/logging"
	"scaph2cc/internal/metrics"
	"scaph2cc/internal/report"
	"scaph2cc/internal/resolver"
	"scaph2cc/internal/scaphandre"

	"github.com/go-logr/logr"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// Exit codes
const (
	exitOK          = 0
	exitUsage       = 1
	exitInput       = 2
	exitAggregation = 3
	exitOutput      = 4
)

func main() {
	exitCode := run(os.Args[1:], os.Environ(), ".")
	os.Exit(exitCode)
}

// run orchestrates the full conversion and returns the exit code.
// Relative paths are resolved against workDir.
func run(args []string, environ []string, workDir string) int {
	cmd, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprint(os.Stderr, cli.Usage)
		return exitUsage
	}

	if cmd.Help {
		fmt.Print(cli.Usage)
		return exitOK
	}
	if cmd.Version {
		fmt.Printf("scaph2cc %s\n", version)
		return exitOK
	}

	cfg, err := loadConfig(cmd.ConfigPath, workDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitUsage
	}

	processName := firstNonEmpty(cmd.ProcessName, cfg.ProcessName)
	if processName == "" {
		fmt.Fprintf(os.Stderr, "Error: %v: --process-name\n", cli.ErrMissingRequired)
		return exitUsage
	}

	policy, err := aggregate.ParseMatchPolicy(firstNonEmpty(cmd.Match, string(cfg.Match)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitUsage
	}

	level := firstNonEmpty(cmd.LogLevel, cfg.LogLevel)
	if cmd.Quiet {
		level = config.LevelError
	}
	log, flush, err := logging.New(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitUsage
	}
	defer flush()

	// Resolve build context from flags, CI environment and config
	resolved := resolver.Resolve(resolver.Flags{
		AppID:       cmd.AppID,
		Branch:      cmd.Branch,
		CommitSHA:   cmd.CommitSHA,
		PipelineURL: cmd.PipelineURL,
	}, environ, cfg)
	if !resolved.Valid() {
		for _, rerr := range resolved.Errors {
			fmt.Fprintln(os.Stderr, "Error:", rerr)
		}
		return exitUsage
	}
	for _, rv := range resolved.Values {
		log.V(1).Info("resolved context", "field", rv.Field.Key, "source", rv.Source, "envVar", rv.EnvVar)
	}
	ctx := resolved.Context()
	logCIJob(log, environ)

	inputFile := resolvePath(cmd.InputFile, workDir)
	log.Info("reading measurements", "file", inputFile)
	store, err := scaphandre.Load(inputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitInput
	}
	if hostPower, ok := store.HostMeanPower(); ok {
		first, last := store.Span()
		log.V(1).Info("loaded snapshots", "count", store.Len(), "hostMeanPower", hostPower, "first", first, "last", last)
	}

	log.Info("calculating consumption", "process", processName, "match", policy)
	matches := aggregate.Filter(store.Snapshots(), processName, policy)
	m, err := aggregate.FromMatches(processName, matches)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitAggregation
	}
	if log.V(1).Enabled() {
		fmt.Fprint(os.Stderr, report.FormatDetails(m, matches.PIDs()))
	}

	result := report.Assemble(m, ctx)

	outputFile := resolvePath(cmd.OutputFile, workDir)
	log.Info("saving results", "file", outputFile)
	if err := result.WriteToFile(outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot write report: %s: %v\n", outputFile, err)
		return exitOutput
	}

	if code := writeSecondary(log, cmd, cfg, workDir, result, m, ctx); code != exitOK {
		return code
	}

	if cmd.JSONOutput {
		jsonBytes, err := result.ToJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot serialize report: %v\n", err)
			return exitOutput
		}
		fmt.Println(string(jsonBytes))
	} else if !cmd.Quiet {
		fmt.Print(report.FormatCLI(result))
	}

	return exitOK
}

// writeSecondary writes the optional JUnit and Prometheus outputs.
func writeSecondary(log logr.Logger, cmd cli.Command, cfg config.Config, workDir string, result report.Result, m aggregate.Metrics, ctx report.Context) int {
	if path := firstNonEmpty(cmd.JUnitFile, cfg.JUnitFile); path != "" {
		path = resolvePath(path, workDir)
		log.Info("saving junit report", "file", path)
		if err := junit.Build(result).WriteToFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot write junit report: %s: %v\n", path, err)
			return exitOutput
		}
	}

	if path := firstNonEmpty(cmd.MetricsFile, cfg.MetricsFile); path != "" {
		path = resolvePath(path, workDir)
		exporter := metrics.NewExporter()
		exporter.Observe(m, ctx)
		log.Info("saving metrics", "file", path)
		if err := exporter.WriteTextfile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot write metrics: %s: %v\n", path, err)
			return exitOutput
		}
	}

	return exitOK
}

// logCIJob logs the GitLab CI job the run belongs to, when there is one.
func logCIJob(log logr.Logger, environ []string) {
	name, _ := resolver.Lookup(environ, "CI_JOB_NAME")
	url, _ := resolver.Lookup(environ, "CI_JOB_URL")
	if name == "" && url == "" {
		return
	}
	log.Info("running in CI job", "name", name, "url", url)
}

// loadConfig loads the explicit config file, or the optional default one.
func loadConfig(flagValue string, workDir string) (config.Config, error) {
	if flagValue != "" {
		return config.Load(resolvePath(flagValue, workDir), false)
	}
	return config.Load(filepath.Join(workDir, config.DefaultPath), true)
}

// resolvePath makes a relative path relative to workDir.
func resolvePath(path string, workDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
