package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/katalvlaran/dstarlite/internal/app"
)

// Exit codes.
const (
	CodeFailure     = 1
	CodeUsage       = 2
	CodeUnreachable = 3
)

// ExitError carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// varsFlag collects repeated -var name=value flags.
type varsFlag map[string]string

func (v varsFlag) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k+"="+v[k])
	}
	sort.Strings(keys)

	return strings.Join(keys, ",")
}

func (v varsFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("want name=value, got %q", s)
	}
	v[strings.TrimSpace(name)] = value

	return nil
}

// Parse processes command-line arguments. It returns the config, whether
// the program should exit cleanly (help was shown), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("dstarlite", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
dstarlite - incremental grid path planning with D* Lite.

Usage:
  dstarlite [options] SCENARIO.hcl

Options:
`)
		flagSet.PrintDefaults()
	}

	vars := varsFlag{}
	scenarioFlag := flagSet.String("scenario", "", "Path to the scenario file.")
	flagSet.Var(vars, "var", "Scenario variable as name=value; repeatable.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	metricsFlag := flagSet.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. ':9090'. Empty disables.")
	viewerFlag := flagSet.String("viewer-url", "", "socket.io viewer URL, e.g. 'http://localhost:3000/socket.io/'. Empty disables.")
	namespaceFlag := flagSet.String("viewer-namespace", "/", "socket.io namespace of the viewer.")
	delayFlag := flagSet.Duration("step-delay", -1, "Delay between robot actions; negative keeps the scenario value.")
	planOnlyFlag := flagSet.Bool("plan-only", false, "Plan without executing.")
	verifyFlag := flagSet.Bool("verify", false, "Cross-check the plan cost against Dijkstra.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: CodeUsage, Message: err.Error()}
	}

	path := *scenarioFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: CodeUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: CodeUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	delay := *delayFlag
	if delay < 0 {
		delay = -1
	}
	cfg, err := app.NewConfig(app.Config{
		ScenarioPath:    path,
		Vars:            vars,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		MetricsAddr:     *metricsFlag,
		ViewerURL:       *viewerFlag,
		ViewerNamespace: *namespaceFlag,
		StepDelay:       delay,
		PlanOnly:        *planOnlyFlag,
		Verify:          *verifyFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: CodeUsage, Message: err.Error()}
	}

	return cfg, false, nil
}

// ExitCode maps a run error to an exit code.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, app.ErrNoPath):
		return CodeUnreachable
	default:
		return CodeFailure
	}
}
